package photos

import (
	"github.com/albumix/albumix/database/models"
	"gorm.io/gorm"
)

// Repository 照片仓库 - 封装所有照片相关的数据库操作
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的照片仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreatePhoto 创建照片记录
func (r *Repository) CreatePhoto(photo *models.Photo) error {
	return r.db.Create(photo).Error
}

// UpdatePhoto 更新照片记录
func (r *Repository) UpdatePhoto(photo *models.Photo) error {
	return r.db.Save(photo).Error
}

// GetPhotoByID 通过ID获取照片
func (r *Repository) GetPhotoByID(photoID uint) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.First(&photo, photoID).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// GetPhotosByAlbumID 获取相册内的全部照片
func (r *Repository) GetPhotosByAlbumID(albumID uint) ([]*models.Photo, error) {
	var photos []*models.Photo
	err := r.db.Where("album_id = ?", albumID).Order("created_at asc").Find(&photos).Error
	return photos, err
}

// DeletePhoto 删除照片记录
func (r *Repository) DeletePhoto(photoID uint) error {
	return r.db.Delete(&models.Photo{}, photoID).Error
}

// DeletePhotosByAlbumID 删除相册内的全部照片记录
func (r *Repository) DeletePhotosByAlbumID(albumID uint) error {
	return r.db.Where("album_id = ?", albumID).Delete(&models.Photo{}).Error
}
