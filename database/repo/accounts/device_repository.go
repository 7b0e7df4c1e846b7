package accounts

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/albumix/albumix/database"
	"github.com/albumix/albumix/database/models"
	"gorm.io/gorm"
)

// DeviceRepository 设备仓库 - 封装所有设备相关的数据库操作
type DeviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository 创建新的设备仓库
func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// hashToken refresh token 仅存储 SHA-256 摘要
func hashToken(refreshToken string) string {
	hasher := sha256.New()
	hasher.Write([]byte(refreshToken))
	return hex.EncodeToString(hasher.Sum(nil))
}

// CreateLoginDevice 创建设备登录记录
func (r *DeviceRepository) CreateLoginDevice(accountID uint, deviceID string, refreshToken string, refreshTokenExpiry time.Time) error {
	device := &models.Device{
		AccountID:    accountID,
		RefreshToken: hashToken(refreshToken),
		Expiry:       refreshTokenExpiry,
		DeviceID:     deviceID,
	}
	return r.db.Create(device).Error
}

// GetDeviceByRefreshTokenAndDeviceID 通过刷新令牌和设备ID获取设备
func (r *DeviceRepository) GetDeviceByRefreshTokenAndDeviceID(refreshToken string, deviceID string) (*models.Device, error) {
	var device models.Device
	err := r.db.Where("refresh_token = ? AND device_id = ? AND expiry > ?",
		hashToken(refreshToken), deviceID, time.Now()).First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

// RotateRefreshToken 轮换刷新令牌，删除与重建在同一事务内
func (r *DeviceRepository) RotateRefreshToken(accountID uint, deviceID, newRefreshToken string, newRefreshTokenExpiry time.Time) error {
	return database.Transaction(r.db, func(tx *gorm.DB) error {
		if err := tx.Where("device_id = ?", deviceID).Delete(&models.Device{}).Error; err != nil {
			return err
		}

		newDevice := &models.Device{
			AccountID:    accountID,
			RefreshToken: hashToken(newRefreshToken),
			Expiry:       newRefreshTokenExpiry,
			DeviceID:     deviceID,
		}
		return tx.Create(newDevice).Error
	})
}

// DeleteDevice 删除设备记录（登出）
func (r *DeviceRepository) DeleteDevice(deviceID string) error {
	return r.db.Where("device_id = ?", deviceID).Delete(&models.Device{}).Error
}

// DeleteDevicesByAccountID 删除账户的全部设备记录
func (r *DeviceRepository) DeleteDevicesByAccountID(accountID uint) error {
	return r.db.Where("account_id = ?", accountID).Delete(&models.Device{}).Error
}
