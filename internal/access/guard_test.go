package access

import (
	"fmt"
	"testing"

	"github.com/albumix/albumix/database/models"
	albumsRepo "github.com/albumix/albumix/database/repo/albums"
	photosRepo "github.com/albumix/albumix/database/repo/photos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupGuard 创建测试数据库和 Guard
func setupGuard(t *testing.T) (*Guard, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Account{}, &models.Album{}, &models.Photo{})
	require.NoError(t, err)

	guard := NewGuard(albumsRepo.NewRepository(db), photosRepo.NewRepository(db))
	return guard, db
}

func seedAlbum(t *testing.T, db *gorm.DB, accountID uint) *models.Album {
	t.Helper()
	album := &models.Album{AccountID: accountID, Name: "Trip"}
	require.NoError(t, db.Create(album).Error)
	return album
}

func seedPhoto(t *testing.T, db *gorm.DB, albumID uint) *models.Photo {
	t.Helper()
	photo := &models.Photo{
		AlbumID:          albumID,
		Name:             "beach.jpg",
		OriginalFilename: "beach.jpg",
		StoredFilename:   "aB3dE5fG7h_beach.jpg",
	}
	require.NoError(t, db.Create(photo).Error)
	return photo
}

func TestRequireAlbumOwner_Owner(t *testing.T) {
	guard, db := setupGuard(t)
	album := seedAlbum(t, db, 1)

	got, err := guard.RequireAlbumOwner(1, album.ID)
	require.NoError(t, err)
	assert.Equal(t, album.ID, got.ID)
}

func TestRequireAlbumOwner_NotOwner(t *testing.T) {
	guard, db := setupGuard(t)
	album := seedAlbum(t, db, 1)

	got, err := guard.RequireAlbumOwner(2, album.ID)
	assert.ErrorIs(t, err, ErrDenied)
	assert.Nil(t, got)
}

func TestRequireAlbumOwner_Missing(t *testing.T) {
	guard, _ := setupGuard(t)

	got, err := guard.RequireAlbumOwner(1, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, got)
}

func TestRequirePhotoInAlbum_Match(t *testing.T) {
	guard, db := setupGuard(t)
	album := seedAlbum(t, db, 1)
	photo := seedPhoto(t, db, album.ID)

	gotAlbum, gotPhoto, err := guard.RequirePhotoInAlbum(1, album.ID, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, album.ID, gotAlbum.ID)
	assert.Equal(t, photo.ID, gotPhoto.ID)
}

// TestRequirePhotoInAlbum_CrossAlbum 防 ID 替换：照片属于别的相册时拒绝
func TestRequirePhotoInAlbum_CrossAlbum(t *testing.T) {
	guard, db := setupGuard(t)
	albumA := seedAlbum(t, db, 1)
	albumB := seedAlbum(t, db, 1)
	photo := seedPhoto(t, db, albumB.ID)

	_, _, err := guard.RequirePhotoInAlbum(1, albumA.ID, photo.ID)
	assert.ErrorIs(t, err, ErrDenied)
}

// TestRequirePhotoInAlbum_ForeignAccount 非所有者永远拿到 ErrDenied，
// 无论照片是否存在，不泄露资源存在性
func TestRequirePhotoInAlbum_ForeignAccount(t *testing.T) {
	guard, db := setupGuard(t)
	album := seedAlbum(t, db, 1)
	photo := seedPhoto(t, db, album.ID)

	_, _, err := guard.RequirePhotoInAlbum(2, album.ID, photo.ID)
	assert.ErrorIs(t, err, ErrDenied)

	_, _, err = guard.RequirePhotoInAlbum(2, album.ID, 999)
	assert.ErrorIs(t, err, ErrDenied)
}

func TestRequirePhotoInAlbum_MissingPhoto(t *testing.T) {
	guard, db := setupGuard(t)
	album := seedAlbum(t, db, 1)

	_, _, err := guard.RequirePhotoInAlbum(1, album.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
