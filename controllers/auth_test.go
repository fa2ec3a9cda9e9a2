package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"desa-portal-api/config"
	"desa-portal-api/middleware"
	"desa-portal-api/models"
	"desa-portal-api/utils"
)

func seedAdmin(t *testing.T, username, password string) *models.AdminUser {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.AdminUser{
		Username:     username,
		PasswordHash: hash,
		Name:         "Petugas Desa",
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return &user
}

func authTestRouter() *gin.Engine {
	router := gin.New()
	router.POST("/api/v1/auth/login", Login)
	router.POST("/api/v1/auth/logout", Logout)
	router.GET("/api/v1/auth/me", middleware.AuthMiddleware(), Me)
	return router
}

func postLogin(router *gin.Engine, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLogin_IssuesUsableToken(t *testing.T) {
	setupPortalTest(t)
	seedAdmin(t, "petugas", "rahasia-desa")
	router := authTestRouter()

	w := postLogin(router, `{"username":"petugas","password":"rahasia-desa"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("missing token in %v", resp)
	}
	user, _ := resp["user"].(map[string]interface{})
	if user["username"] != "petugas" {
		t.Fatalf("unexpected user payload: %v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash leaked in login response")
	}

	// Token authenticates /auth/me.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	// Login must stamp last_login_at.
	var stored models.AdminUser
	if err := config.DB.Where("username = ?", "petugas").First(&stored).Error; err != nil {
		t.Fatalf("reload admin: %v", err)
	}
	if stored.LastLoginAt == nil {
		t.Fatalf("last_login_at not updated")
	}
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	setupPortalTest(t)
	seedAdmin(t, "petugas", "rahasia-desa")
	router := authTestRouter()

	wWrongPass := postLogin(router, `{"username":"petugas","password":"salah"}`)
	wUnknown := postLogin(router, `{"username":"hantu","password":"rahasia-desa"}`)
	if wWrongPass.Code != http.StatusUnauthorized || wUnknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wWrongPass.Code, wUnknown.Code)
	}
	// Unknown user and wrong password read the same.
	if wWrongPass.Body.String() != wUnknown.Body.String() {
		t.Fatalf("credential failures are distinguishable")
	}

	if w := postLogin(router, `{"username":"petugas"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing password: expected 400, got %d", w.Code)
	}
}

func TestLogout_Acknowledges(t *testing.T) {
	setupPortalTest(t)
	router := authTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
