package albums

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
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
	svcAlbums "github.com/albumix/albumix/internal/albums"
	"github.com/albumix/albumix/internal/materializer"
	"github.com/albumix/albumix/internal/materializer/fsstore"
	svcPhotos "github.com/albumix/albumix/internal/photos"
)

// testEnv 组装真实服务栈的路由测试环境
type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
}

// asAccount 将固定账号注入请求上下文，替代 JWT 中间件
func asAccount(accountID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextAccountIDKey, accountID)
		c.Set(middleware.ContextAuthoritiesKey, models.AuthorityUser)
		c.Next()
	}
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

	aRepo := albumsRepo.NewRepository(db)
	pRepo := photosRepo.NewRepository(db)
	guard := access.NewGuard(aRepo, pRepo)

	photosSvc := svcPhotos.NewService(pRepo, guard, mat, store, nil, 0, true, 0)
	albumsSvc := svcAlbums.NewService(aRepo, pRepo, guard, mat, store, nil, 0)

	handler := NewHandler(albumsSvc, photosSvc)

	router := gin.New()
	group := router.Group("/api/v2/albums")
	group.Use(asAccount(accountID))
	{
		group.POST("/add", handler.CreateAlbumHandler)
		group.GET("", handler.ListAlbumsHandler)
		group.GET("/:album_id", handler.GetAlbumDetailHandler)
		group.PUT("/:album_id/update", handler.UpdateAlbumHandler)
		group.DELETE("/:album_id/delete", handler.DeleteAlbumHandler)
		group.POST("/:album_id/upload-photos", handler.UploadPhotosHandler)
	}

	return &testEnv{router: router, db: db}
}

func seedAlbumRow(t *testing.T, db *gorm.DB, accountID uint, name string) *models.Album {
	t.Helper()
	album := &models.Album{AccountID: accountID, Name: name}
	require.NoError(t, db.Create(album).Error)
	return album
}

func pngBody(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 600, 400))
	for y := 0; y < 400; y++ {
		for x := 0; x < 600; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 80, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// multipartBody 构造 files 字段的 multipart 请求体，按扩展名声明 Content-Type
func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, data := range files {
		contentType := "text/plain"
		if strings.HasSuffix(name, ".png") {
			contentType = "image/png"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, name))
		h.Set("Content-Type", contentType)
		part, err := writer.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestCreateAlbumHandler(t *testing.T) {
	env := setupEnv(t, 1)

	body, _ := json.Marshal(map[string]string{"name": "Trip", "description": "2024"})
	req := httptest.NewRequest(http.MethodPost, "/api/v2/albums/add", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			ID     uint          `json:"id"`
			Name   string        `json:"name"`
			Photos []interface{} `json:"photos"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Trip", resp.Data.Name)
	assert.Empty(t, resp.Data.Photos)
}

func TestCreateAlbumHandler_ValidationFailure(t *testing.T) {
	env := setupEnv(t, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/v2/albums/add", bytes.NewReader([]byte(`{"description":"no name"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadPhotosHandler_AllValid(t *testing.T) {
	env := setupEnv(t, 1)
	album := seedAlbumRow(t, env.db, 1, "Trip")

	body, contentType := multipartBody(t, map[string][]byte{
		"beach.png":  pngBody(t),
		"sunset.png": pngBody(t),
	})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v2/albums/%d/upload-photos", album.ID), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			Success []json.RawMessage `json:"SUCCESS"`
			Errors  []json.RawMessage `json:"ERRORS"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Success, 2)
	assert.Empty(t, resp.Data.Errors)
}

func TestUploadPhotosHandler_PartialFailure(t *testing.T) {
	env := setupEnv(t, 1)
	album := seedAlbumRow(t, env.db, 1, "Trip")

	body, contentType := multipartBody(t, map[string][]byte{
		"beach.png": pngBody(t),
		"notes.txt": []byte("not an image"),
	})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v2/albums/%d/upload-photos", album.ID), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMultiStatus, w.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Success []json.RawMessage `json:"SUCCESS"`
			Errors  []struct {
				Filename string `json:"filename"`
			} `json:"ERRORS"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "partial", resp.Status)
	assert.Len(t, resp.Data.Success, 1)
	require.Len(t, resp.Data.Errors, 1)
	assert.Equal(t, "notes.txt", resp.Data.Errors[0].Filename)
}

func TestUploadPhotosHandler_ForeignAlbum(t *testing.T) {
	env := setupEnv(t, 1)
	album := seedAlbumRow(t, env.db, 2, "NotMine")

	body, contentType := multipartBody(t, map[string][]byte{"beach.png": pngBody(t)})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v2/albums/%d/upload-photos", album.ID), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUploadPhotosHandler_MissingAlbum(t *testing.T) {
	env := setupEnv(t, 1)

	body, contentType := multipartBody(t, map[string][]byte{"beach.png": pngBody(t)})
	req := httptest.NewRequest(http.MethodPost, "/api/v2/albums/9999/upload-photos", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAlbumHandler(t *testing.T) {
	env := setupEnv(t, 1)
	album := seedAlbumRow(t, env.db, 1, "Trip")

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v2/albums/%d/delete", album.ID), nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Album{}).Where("id = ?", album.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetAlbumDetailHandler_InvalidID(t *testing.T) {
	env := setupEnv(t, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/v2/albums/abc", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
