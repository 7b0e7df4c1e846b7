package accounts

import (
	"errors"

	"github.com/albumix/albumix/database/models"
	"gorm.io/gorm"
)

// ErrAccountNotFound 账户不存在错误
var ErrAccountNotFound = errors.New("account not found")

// Repository 账户仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的账户仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB 返回底层数据库连接
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// GetAccountByEmail 通过邮箱获取账户
func (r *Repository) GetAccountByEmail(email string) (*models.Account, error) {
	var account models.Account
	err := r.db.Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// GetAccountByID 通过ID获取账户
func (r *Repository) GetAccountByID(id uint) (*models.Account, error) {
	var account models.Account
	err := r.db.Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// CreateAccount 创建账户
func (r *Repository) CreateAccount(account *models.Account) error {
	return r.db.Create(account).Error
}

// UpdateAccount 更新账户
func (r *Repository) UpdateAccount(account *models.Account) error {
	return r.db.Save(account).Error
}

// DeleteAccount 删除账户
func (r *Repository) DeleteAccount(accountID uint) error {
	return r.db.Delete(&models.Account{}, accountID).Error
}

// AccountExists 检查邮箱是否已注册
func (r *Repository) AccountExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Account{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// GetAllAccounts 获取所有账户
func (r *Repository) GetAllAccounts() ([]*models.Account, error) {
	var accounts []*models.Account
	err := r.db.Order("created_at asc").Find(&accounts).Error
	return accounts, err
}
