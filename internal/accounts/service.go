// Package accounts 账号生命周期：注册、资料、密码、权限与注销。
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/albumix/albumix/database/models"
	"github.com/albumix/albumix/database/repo/accounts"
	cryptopackage "github.com/albumix/albumix/utils/crypto"
)

var (
	// ErrEmailTaken 邮箱已被注册
	ErrEmailTaken = errors.New("email already registered")
	// ErrAccountNotFound 账号不存在
	ErrAccountNotFound = accounts.ErrAccountNotFound
	// ErrWrongPassword 原密码不匹配
	ErrWrongPassword = errors.New("current password does not match")
)

// AlbumPurger 注销账号时级联清理相册与照片产物
type AlbumPurger interface {
	DeleteAllForAccount(ctx context.Context, accountID uint) error
}

// Service 账号服务
type Service struct {
	accountsRepo *accounts.Repository
	devicesRepo  *accounts.DeviceRepository
	albums       AlbumPurger
}

// NewService 创建账号服务
func NewService(accountsRepo *accounts.Repository, devicesRepo *accounts.DeviceRepository, albums AlbumPurger) *Service {
	return &Service{
		accountsRepo: accountsRepo,
		devicesRepo:  devicesRepo,
		albums:       albums,
	}
}

// Register 注册新账号。邮箱唯一，密码以 argon2id 哈希存储。
func (s *Service) Register(email, password string) (*models.Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	exists, err := s.accountsRepo.AccountExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := cryptopackage.GenerateFromPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Email:       email,
		Password:    hash,
		Authorities: models.AuthorityUser,
	}
	if err := s.accountsRepo.CreateAccount(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// GetProfile 获取账号资料
func (s *Service) GetProfile(accountID uint) (*models.Account, error) {
	return s.accountsRepo.GetAccountByID(accountID)
}

// ListAccounts 列出所有账号（管理员）
func (s *Service) ListAccounts() ([]*models.Account, error) {
	return s.accountsRepo.GetAllAccounts()
}

// UpdatePassword 更新密码，需验证原密码。成功后吊销全部登录设备。
func (s *Service) UpdatePassword(accountID uint, currentPassword, newPassword string) error {
	account, err := s.accountsRepo.GetAccountByID(accountID)
	if err != nil {
		return err
	}

	ok, err := cryptopackage.ComparePasswordAndHash(currentPassword, account.Password)
	if err != nil {
		return fmt.Errorf("password comparison failed: %w", err)
	}
	if !ok {
		return ErrWrongPassword
	}

	hash, err := cryptopackage.GenerateFromPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	account.Password = hash
	if err := s.accountsRepo.UpdateAccount(account); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	// 密码变更后所有刷新令牌失效
	return s.devicesRepo.DeleteDevicesByAccountID(accountID)
}

// UpdateAuthorities 更新账号权限（管理员）
func (s *Service) UpdateAuthorities(accountID uint, authorities string) (*models.Account, error) {
	account, err := s.accountsRepo.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}

	authorities = strings.TrimSpace(authorities)
	if authorities == "" {
		authorities = models.AuthorityUser
	}

	account.Authorities = authorities
	if err := s.accountsRepo.UpdateAccount(account); err != nil {
		return nil, fmt.Errorf("failed to update authorities: %w", err)
	}
	return account, nil
}

// DeleteProfile 注销账号：级联清理相册、照片与产物，吊销设备，删除账号行。
func (s *Service) DeleteProfile(ctx context.Context, accountID uint) error {
	if _, err := s.accountsRepo.GetAccountByID(accountID); err != nil {
		return err
	}

	if err := s.albums.DeleteAllForAccount(ctx, accountID); err != nil {
		return fmt.Errorf("failed to delete albums for account %d: %w", accountID, err)
	}

	if err := s.devicesRepo.DeleteDevicesByAccountID(accountID); err != nil {
		return fmt.Errorf("failed to delete devices for account %d: %w", accountID, err)
	}

	return s.accountsRepo.DeleteAccount(accountID)
}
