package albums

import (
	"github.com/albumix/albumix/database/models"
	"gorm.io/gorm"
)

// Repository 相册仓库 - 封装所有相册相关的数据库操作
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的相册仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateAlbum 创建相册
func (r *Repository) CreateAlbum(album *models.Album) error {
	return r.db.Create(album).Error
}

// UpdateAlbum 更新相册
func (r *Repository) UpdateAlbum(album *models.Album) error {
	return r.db.Save(album).Error
}

// GetAlbumByID 通过ID获取相册
func (r *Repository) GetAlbumByID(albumID uint) (*models.Album, error) {
	var album models.Album
	err := r.db.First(&album, albumID).Error
	if err != nil {
		return nil, err
	}
	return &album, nil
}

// GetAlbumsByAccountID 获取账户名下的全部相册
// 不分页：单账户相册数量被假定为较小
func (r *Repository) GetAlbumsByAccountID(accountID uint) ([]*models.Album, error) {
	var albums []*models.Album
	err := r.db.Where("account_id = ?", accountID).Order("created_at asc").Find(&albums).Error
	return albums, err
}

// DeleteAlbum 删除相册行。照片行与存储产物由服务层先行清理。
func (r *Repository) DeleteAlbum(albumID uint) error {
	return r.db.Delete(&models.Album{}, albumID).Error
}
