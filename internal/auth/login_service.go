package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/albumix/albumix/database/models"
	"github.com/albumix/albumix/database/repo/accounts"
	cryptopackage "github.com/albumix/albumix/utils/crypto"
	"github.com/google/uuid"
)

// ErrInvalidCredentials 凭据无效
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidRefreshToken 刷新令牌无效或已过期
var ErrInvalidRefreshToken = errors.New("invalid refresh token or device ID")

// LoginResult 登录结果
type LoginResult struct {
	Account            *models.Account
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
	DeviceID           string
}

// RefreshResult Token 刷新结果
type RefreshResult struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
	DeviceID           string
}

// LoginService 登录服务
type LoginService struct {
	accountsRepo *accounts.Repository
	devicesRepo  *accounts.DeviceRepository
	jwtService   *JWTService
}

// NewLoginService 创建新的登录服务
func NewLoginService(
	accountsRepo *accounts.Repository,
	devicesRepo *accounts.DeviceRepository,
	jwtService *JWTService,
) *LoginService {
	return &LoginService{
		accountsRepo: accountsRepo,
		devicesRepo:  devicesRepo,
		jwtService:   jwtService,
	}
}

// ValidateCredentials 验证账号凭据
func (s *LoginService) ValidateCredentials(email, password string) (*models.Account, bool, error) {
	account, err := s.accountsRepo.GetAccountByEmail(email)
	if err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get account: %w", err)
	}

	ok, err := cryptopackage.ComparePasswordAndHash(password, account.Password)
	if err != nil {
		return nil, false, fmt.Errorf("password comparison failed: %w", err)
	}

	return account, ok, nil
}

// Login 执行登录操作
func (s *LoginService) Login(email, password string) (*LoginResult, error) {
	account, valid, err := s.ValidateCredentials(email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to validate credentials: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	// 生成 tokens
	tokenPair, err := s.jwtService.GenerateTokens(account.Email, account.ID, account.Authorities)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	deviceID := uuid.New().String()
	err = s.devicesRepo.CreateLoginDevice(account.ID, deviceID, tokenPair.RefreshToken, tokenPair.RefreshTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to store device token: %w", err)
	}

	return &LoginResult{
		Account:            account,
		AccessToken:        tokenPair.AccessToken,
		AccessTokenExpiry:  tokenPair.AccessTokenExpiry,
		RefreshToken:       tokenPair.RefreshToken,
		RefreshTokenExpiry: tokenPair.RefreshTokenExpiry,
		DeviceID:           deviceID,
	}, nil
}

// RefreshToken 刷新访问令牌并轮换刷新令牌
func (s *LoginService) RefreshToken(refreshToken, deviceID string) (*RefreshResult, error) {
	device, err := s.devicesRepo.GetDeviceByRefreshTokenAndDeviceID(refreshToken, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}
	if device == nil {
		return nil, ErrInvalidRefreshToken
	}

	account, err := s.accountsRepo.GetAccountByID(device.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	newRefreshToken, newRefreshTokenExpiry, err := s.jwtService.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate new refresh token: %w", err)
	}

	// 轮换刷新令牌
	err = s.devicesRepo.RotateRefreshToken(account.ID, device.DeviceID, newRefreshToken, newRefreshTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to update device token: %w", err)
	}

	accessToken, accessTokenExpiry, err := s.jwtService.GenerateAccessToken(account.Email, account.ID, account.Authorities)
	if err != nil {
		return nil, fmt.Errorf("failed to generate new access token: %w", err)
	}

	return &RefreshResult{
		AccessToken:        accessToken,
		AccessTokenExpiry:  accessTokenExpiry,
		RefreshToken:       newRefreshToken,
		RefreshTokenExpiry: newRefreshTokenExpiry,
		DeviceID:           deviceID,
	}, nil
}

// Logout 执行登出操作
func (s *LoginService) Logout(deviceID string) error {
	return s.devicesRepo.DeleteDevice(deviceID)
}
