package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/daybookapp/daybook/pkg/daybook/models"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func setupTestRouter(db *gorm.DB, onRegister func(tx *gorm.DB, userID uint) error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db, onRegister)
	handler.RegisterRoutes(r.Group("/api/auth"))
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestHashAndCheckPassword(t *testing.T) {
	password := "correct-horse-battery"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == password {
		t.Error("Hash should not equal the plaintext password")
	}
	if !CheckPassword(password, hash) {
		t.Error("CheckPassword should return true for correct password")
	}
	if CheckPassword("wrongpassword", hash) {
		t.Error("CheckPassword should return false for incorrect password")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, "ada")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "ada" {
		t.Errorf("Unexpected claims: %+v", claims)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Error("Token should not be expired")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestRegisterLoginAndMe(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db, nil)

	resp := doJSON(router, "POST", "/api/auth/register", RegisterRequest{
		Username: "ada",
		Password: "password123",
		Name:     "Ada",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Register: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var auth AuthResponse
	json.Unmarshal(resp.Body.Bytes(), &auth)
	if auth.Token == "" || auth.User.Username != "ada" {
		t.Fatalf("Unexpected auth response: %+v", auth)
	}

	// Duplicate username is rejected.
	resp = doJSON(router, "POST", "/api/auth/register", RegisterRequest{
		Username: "ada",
		Password: "password123",
	})
	if resp.Code != http.StatusConflict {
		t.Errorf("Duplicate register: expected 409, got %d", resp.Code)
	}

	resp = doJSON(router, "POST", "/api/auth/login", LoginRequest{
		Username: "ada",
		Password: "password123",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("Login: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(router, "POST", "/api/auth/login", LoginRequest{
		Username: "ada",
		Password: "wrong-password",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Bad login: expected 401, got %d", resp.Code)
	}

	req, _ := http.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Me: expected 200, got %d", rec.Code)
	}
	var me UserResponse
	json.Unmarshal(rec.Body.Bytes(), &me)
	if me.Username != "ada" {
		t.Errorf("Me returned wrong user: %+v", me)
	}
}

func TestRegisterRunsOnRegisterHookInTransaction(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db, func(tx *gorm.DB, userID uint) error {
		return tx.Create(&models.Tag{UserID: userID, Name: "Personal", CreatedAt: time.Now()}).Error
	})

	resp := doJSON(router, "POST", "/api/auth/register", RegisterRequest{
		Username: "ada",
		Password: "password123",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Register: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var tag models.Tag
	if err := db.Where("name = ?", "Personal").First(&tag).Error; err != nil {
		t.Fatalf("Hook did not run: %v", err)
	}
}

func TestAuthMiddlewareRejectsMissingAndBadTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("No header: expected 401, got %d", rec.Code)
	}

	req, _ = http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Bad scheme: expected 401, got %d", rec.Code)
	}

	token, _ := GenerateToken(7, "ada")
	req, _ = http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Valid token: expected 200, got %d", rec.Code)
	}
}
