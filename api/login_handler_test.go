package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/albumix/albumix/config"
	"github.com/albumix/albumix/database/models"
	repoAccounts "github.com/albumix/albumix/database/repo/accounts"
	"github.com/albumix/albumix/internal/auth"
	cryptopackage "github.com/albumix/albumix/utils/crypto"
)

// setupLoginTest 组装真实登录栈：sqlite + 设备仓库 + JWT
func setupLoginTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Account{}, &models.Device{}))

	hash, err := cryptopackage.GenerateFromPassword("correct-horse-battery")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Account{
		Email:       "user@example.com",
		Password:    hash,
		Authorities: models.AuthorityUser,
	}).Error)

	jwtService, err := auth.NewJWTService(&config.Config{
		JWTSecret:           "test-secret-key-at-least-32-characters-long",
		JWTExpiresIn:        "15m",
		JWTRefreshExpiresIn: "720h",
	})
	require.NoError(t, err)

	loginService := auth.NewLoginService(
		repoAccounts.NewRepository(db),
		repoAccounts.NewDeviceRepository(db),
		jwtService,
	)
	handler := NewLoginHandler(loginService)

	router := gin.New()
	router.POST("/api/v2/auth/token", handler.LoginHandlerFunc)
	router.POST("/api/v2/auth/refresh", handler.RefreshTokenHandlerFunc)
	router.POST("/api/v2/auth/logout", handler.LogoutHandlerFunc)
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginHandler_Success(t *testing.T) {
	router := setupLoginTest(t)

	w := postJSON(router, "/api/v2/auth/token", map[string]string{
		"email":    "user@example.com",
		"password": "correct-horse-battery",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data loginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Data.AccessToken, "Bearer "))
	assert.NotZero(t, resp.Data.AccessTokenExpiry)

	cookies := w.Result().Cookies()
	var names []string
	for _, cookie := range cookies {
		names = append(names, cookie.Name)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, authCookiePath, cookie.Path)
	}
	assert.Contains(t, names, "refresh_token")
	assert.Contains(t, names, "device_id")
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	router := setupLoginTest(t)

	w := postJSON(router, "/api/v2/auth/token", map[string]string{
		"email":    "user@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginHandler_UnknownAccount(t *testing.T) {
	router := setupLoginTest(t)

	w := postJSON(router, "/api/v2/auth/token", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginHandler_InvalidJSON(t *testing.T) {
	router := setupLoginTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v2/auth/token", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshTokenHandler_RoundTrip(t *testing.T) {
	router := setupLoginTest(t)

	loginResp := postJSON(router, "/api/v2/auth/token", map[string]string{
		"email":    "user@example.com",
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, loginResp.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v2/auth/refresh", nil)
	for _, cookie := range loginResp.Result().Cookies() {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data loginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Data.AccessToken, "Bearer "))
}

func TestRefreshTokenHandler_MissingCookies(t *testing.T) {
	router := setupLoginTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v2/auth/refresh", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutHandler_InvalidatesRefreshToken(t *testing.T) {
	router := setupLoginTest(t)

	loginResp := postJSON(router, "/api/v2/auth/token", map[string]string{
		"email":    "user@example.com",
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, loginResp.Code)
	cookies := loginResp.Result().Cookies()

	logoutReq := httptest.NewRequest(http.MethodPost, "/api/v2/auth/logout", nil)
	for _, cookie := range cookies {
		logoutReq.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, logoutReq)
	assert.Equal(t, http.StatusOK, w.Code)

	// 删除 cookie 的域和路径与登录时一致，否则浏览器不会删除
	cleared := w.Result().Cookies()
	require.Len(t, cleared, 2)
	for _, cookie := range cleared {
		assert.Equal(t, authCookiePath, cookie.Path)
		assert.Empty(t, cookie.Domain)
		assert.Negative(t, cookie.MaxAge)
	}

	// 注销后原刷新令牌失效
	refreshReq := httptest.NewRequest(http.MethodPost, "/api/v2/auth/refresh", nil)
	for _, cookie := range cookies {
		refreshReq.AddCookie(cookie)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, refreshReq)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
