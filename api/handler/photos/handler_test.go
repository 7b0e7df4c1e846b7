package photos

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/albumix/albumix/api/middleware"
	"github.com/albumix/albumix/database/models"
	albumsRepo "github.com/albumix/albumix/database/repo/albums"
	photosRepo "github.com/albumix/albumix/database/repo/photos"
	"github.com/albumix/albumix/internal/access"
	"github.com/albumix/albumix/internal/materializer"
	"github.com/albumix/albumix/internal/materializer/fsstore"
	svcPhotos "github.com/albumix/albumix/internal/photos"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	svc    *svcPhotos.Service
}

func setupEnv(t *testing.T, accountID uint) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Account{}, &models.Album{}, &models.Photo{}))

	store, err := fsstore.NewStore(t.TempDir())
	require.NoError(t, err)

	mat, err := materializer.New(materializer.Config{
		Mode:           materializer.ModeLocal,
		Store:          store,
		ThumbnailWidth: 300,
	})
	require.NoError(t, err)

	pRepo := photosRepo.NewRepository(db)
	guard := access.NewGuard(albumsRepo.NewRepository(db), pRepo)
	svc := svcPhotos.NewService(pRepo, guard, mat, store, nil, 0, true, 0)

	handler := NewHandler(svc)

	router := gin.New()
	group := router.Group("/api/v2/albums")
	group.Use(func(c *gin.Context) {
		c.Set(middleware.ContextAccountIDKey, accountID)
		c.Next()
	})
	{
		group.DELETE("/:album_id/photo/:photo_id/delete", handler.DeletePhotoHandler)
		group.GET("/:album_id/photos/:photo_id/download-photo", handler.DownloadPhotoHandler)
	}
	router.GET("/api/v2/public/thumbnails/:album_id/:photo_id", handler.PublicThumbnailHandler)

	return &testEnv{router: router, db: db, svc: svc}
}

func pngFile(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 600, 400))
	for y := 0; y < 400; y++ {
		for x := 0; x < 600; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(y % 256), B: uint8(x % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// uploadOne 通过服务上传一张照片并返回其元数据行
func uploadOne(t *testing.T, env *testEnv, accountID uint, name string) (*models.Album, *models.Photo, []byte) {
	t.Helper()

	album := &models.Album{AccountID: accountID, Name: "Trip"}
	require.NoError(t, env.db.Create(album).Error)

	data := pngFile(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, name))
	h.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	result, err := env.svc.Upload(t.Context(), accountID, album.ID, form.File["files"])
	require.NoError(t, err)
	require.Len(t, result.Success, 1)

	var photo models.Photo
	require.NoError(t, env.db.First(&photo, result.Success[0].ID).Error)
	return album, &photo, data
}

func TestDownloadPhotoHandler(t *testing.T) {
	env := setupEnv(t, 1)
	album, photo, original := uploadOne(t, env, 1, "beach.png")

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v2/albums/%d/photos/%d/download-photo", album.ID, photo.ID), nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="beach.png"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, original, w.Body.Bytes())
}

func TestDownloadPhotoHandler_ForeignAlbum(t *testing.T) {
	env := setupEnv(t, 1)
	album, photo, _ := uploadOne(t, env, 2, "beach.png")

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v2/albums/%d/photos/%d/download-photo", album.ID, photo.ID), nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeletePhotoHandler(t *testing.T) {
	env := setupEnv(t, 1)
	album, photo, _ := uploadOne(t, env, 1, "beach.png")

	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/v2/albums/%d/photo/%d/delete", album.ID, photo.ID), nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Photo{}).Where("id = ?", photo.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPublicThumbnailHandler(t *testing.T) {
	env := setupEnv(t, 1)
	album, photo, _ := uploadOne(t, env, 1, "beach.png")

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v2/public/thumbnails/%d/%d", album.ID, photo.ID), nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=604800", w.Header().Get("Cache-Control"))

	img, _, err := image.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
}

func TestPublicThumbnailHandler_Missing(t *testing.T) {
	env := setupEnv(t, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/v2/public/thumbnails/1/999", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
