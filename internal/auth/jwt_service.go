package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/albumix/albumix/config"
	"github.com/albumix/albumix/utils"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPair 包含访问令牌和刷新令牌
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// TokenClaims JWT 令牌声明
type TokenClaims struct {
	Email       string
	AccountID   uint
	Authorities string
	Type        string
	Exp         int64
	Iat         int64
}

// TokenConfig 保存 JWT 配置
type TokenConfig struct {
	Secret           []byte
	ExpiresIn        time.Duration
	RefreshExpiresIn time.Duration
}

// JWTService JWT Token 服务
type JWTService struct {
	config TokenConfig
	mutex  sync.RWMutex
}

// NewJWTService 创建新的 JWT 服务
func NewJWTService(cfg *config.Config) (*JWTService, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT secret must be at least 32 characters long, got %d", len(cfg.JWTSecret))
	}

	duration, err := time.ParseDuration(cfg.JWTExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access token TTL: %s", cfg.JWTExpiresIn)
	}

	refreshDuration, err := time.ParseDuration(cfg.JWTRefreshExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh token TTL: %s", cfg.JWTRefreshExpiresIn)
	}

	return &JWTService{
		config: TokenConfig{
			Secret:           []byte(cfg.JWTSecret),
			ExpiresIn:        duration,
			RefreshExpiresIn: refreshDuration,
		},
	}, nil
}

// GetConfig 获取当前 JWT 配置（只读）
func (s *JWTService) GetConfig() TokenConfig {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return TokenConfig{
		Secret:           append([]byte{}, s.config.Secret...),
		ExpiresIn:        s.config.ExpiresIn,
		RefreshExpiresIn: s.config.RefreshExpiresIn,
	}
}

// SetConfig 设置 JWT 配置（仅用于测试）
func (s *JWTService) SetConfig(config TokenConfig) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.config = config
}

// GenerateTokens 生成访问令牌和刷新令牌
func (s *JWTService) GenerateTokens(email string, accountID uint, authorities string) (*TokenPair, error) {
	accessToken, accessTokenExpiry, err := s.GenerateAccessToken(email, accountID, authorities)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshTokenExpiry, err := s.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:        accessToken,
		AccessTokenExpiry:  accessTokenExpiry,
		RefreshToken:       refreshToken,
		RefreshTokenExpiry: refreshTokenExpiry,
	}, nil
}

// GenerateAccessToken 仅生成访问令牌
func (s *JWTService) GenerateAccessToken(email string, accountID uint, authorities string) (string, time.Time, error) {
	config := s.GetConfig()

	if len(config.Secret) == 0 {
		return "", time.Time{}, errors.New("JWT secret is not initialized")
	}

	accessTokenExpiry := time.Now().Add(config.ExpiresIn)
	accessClaims := jwt.MapClaims{
		"email":       email,
		"account_id":  accountID,
		"authorities": authorities,
		"type":        "access",
		"exp":         accessTokenExpiry.Unix(),
		"iat":         time.Now().Unix(),
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(config.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, accessTokenExpiry, nil
}

// GenerateRefreshToken 生成刷新令牌
func (s *JWTService) GenerateRefreshToken() (string, time.Time, error) {
	config := s.GetConfig()

	refreshToken, err := utils.GenerateRandomToken(64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	refreshTokenExpiry := time.Now().Add(config.RefreshExpiresIn)
	return refreshToken, refreshTokenExpiry, nil
}

// ParseToken 解析和验证 JWT 令牌
func (s *JWTService) ParseToken(tokenString string) (jwt.MapClaims, error) {
	config := s.GetConfig()

	if len(config.Secret) == 0 {
		return nil, errors.New("JWT secret is not initialized")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return config.Secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ExtractClaims 从令牌中提取声明
func (s *JWTService) ExtractClaims(tokenString string) (*TokenClaims, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	email, _ := claims["email"].(string)
	authorities, _ := claims["authorities"].(string)
	tokenType, _ := claims["type"].(string)

	accountIDFloat, _ := claims["account_id"].(float64)
	accountID := uint(accountIDFloat)

	expFloat, _ := claims["exp"].(float64)
	iatFloat, _ := claims["iat"].(float64)

	return &TokenClaims{
		Email:       email,
		AccountID:   accountID,
		Authorities: authorities,
		Type:        tokenType,
		Exp:         int64(expFloat),
		Iat:         int64(iatFloat),
	}, nil
}

// ValidateToken 验证令牌是否有效
func (s *JWTService) ValidateToken(tokenString string) error {
	_, err := s.ParseToken(tokenString)
	return err
}

// IsAccessToken 检查令牌是否为访问令牌
func (s *JWTService) IsAccessToken(tokenString string) (bool, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return false, err
	}

	tokenType, _ := claims["type"].(string)
	return tokenType == "access", nil
}
