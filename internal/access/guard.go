// Package access 集中处理资源所有权校验。
// 所有读写相册/照片的操作在执行前都要经过 Guard。
package access

import (
	"errors"

	"github.com/albumix/albumix/database/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound 目标资源不存在
	ErrNotFound = errors.New("resource not found")
	// ErrDenied 调用者不是资源所有者
	ErrDenied = errors.New("access denied")
)

// AlbumResolver resolves an album to check its owner.
type AlbumResolver interface {
	GetAlbumByID(albumID uint) (*models.Album, error)
}

// PhotoResolver resolves a photo to check its album binding.
type PhotoResolver interface {
	GetPhotoByID(photoID uint) (*models.Photo, error)
}

// Guard verifies that the authenticated caller owns the album (and, for
// photo operations, that the photo belongs to the stated album). Mismatches
// surface as ErrDenied, absent resources as ErrNotFound; callers map those
// to 403/404 without leaking details of other accounts' resources.
type Guard struct {
	albums AlbumResolver
	photos PhotoResolver
}

// NewGuard 创建所有权校验器
func NewGuard(albums AlbumResolver, photos PhotoResolver) *Guard {
	return &Guard{albums: albums, photos: photos}
}

// RequireAlbumOwner returns the album when it exists and is owned by the
// caller's account.
func (g *Guard) RequireAlbumOwner(accountID, albumID uint) (*models.Album, error) {
	album, err := g.albums.GetAlbumByID(albumID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if album.AccountID != accountID {
		return nil, ErrDenied
	}
	return album, nil
}

// RequirePhotoInAlbum performs the double ownership check for photo
// operations: the caller must own the album, and the photo must belong to
// the stated album. A photo attached to a different album is treated as a
// denial, not a not-found, matching the album-level response.
func (g *Guard) RequirePhotoInAlbum(accountID, albumID, photoID uint) (*models.Album, *models.Photo, error) {
	album, err := g.RequireAlbumOwner(accountID, albumID)
	if err != nil {
		return nil, nil, err
	}

	photo, err := g.photos.GetPhotoByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	if photo.AlbumID != album.ID {
		return nil, nil, ErrDenied
	}
	return album, photo, nil
}
