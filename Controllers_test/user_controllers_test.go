package Controllers_test

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

	"github.com/hendrawanp/passvault-app/controllers"
	"github.com/hendrawanp/passvault-app/middlewares"
	"github.com/hendrawanp/passvault-app/models"
	"github.com/hendrawanp/passvault-app/utils"
)

func setupUserTestDB(t *testing.T) *gorm.DB {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.EventQueueItem{},
		&models.Event{},
	))
	return db
}

// setupUserRouter uses the real auth middleware so token handling is
// exercised end to end.
func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)

	auth := router.Group("/api")
	auth.Use(middlewares.AuthMiddleware())
	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}, token string) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, body []byte) map[string]interface{} {
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &resp))
	data, _ := resp["data"].(map[string]interface{})
	return data
}

func TestUserRegisterLoginProfile(t *testing.T) {
	utils.InitLogger()
	db := setupUserTestDB(t)
	router := setupUserRouter(db)

	w := doJSON(t, router, "POST", "/register", gin.H{
		"name":     "Dewi",
		"email":    "Dewi@Example.com",
		"password": "Sup3rSecret!",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// email is stored lowercased
	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "dewi@example.com").Error)
	assert.Equal(t, "user", user.Role)
	assert.NotEqual(t, "Sup3rSecret!", user.Password)

	w = doJSON(t, router, "POST", "/login", gin.H{
		"email":    "dewi@example.com",
		"password": "Sup3rSecret!",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w.Body.Bytes())
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	w = doJSON(t, router, "GET", "/api/profile", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w.Body.Bytes())
	assert.Equal(t, user.ID, data["id"])
	assert.Equal(t, "dewi@example.com", data["email"])
}

func TestUserLogin_InvalidCredentials(t *testing.T) {
	utils.InitLogger()
	db := setupUserTestDB(t)
	router := setupUserRouter(db)

	w := doJSON(t, router, "POST", "/register", gin.H{
		"name":     "Dewi",
		"email":    "dewi@example.com",
		"password": "Sup3rSecret!",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/login", gin.H{
		"email":    "dewi@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, "POST", "/login", gin.H{
		"email":    "nobody@example.com",
		"password": "Sup3rSecret!",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserLogout_BlacklistsToken(t *testing.T) {
	utils.InitLogger()
	db := setupUserTestDB(t)
	router := setupUserRouter(db)

	w := doJSON(t, router, "POST", "/register", gin.H{
		"name":     "Dewi",
		"email":    "dewi@example.com",
		"password": "Sup3rSecret!",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/login", gin.H{
		"email":    "dewi@example.com",
		"password": "Sup3rSecret!",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	token := decodeData(t, w.Body.Bytes())["token"].(string)

	w = doJSON(t, router, "POST", "/api/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/api/profile", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfile_RequiresToken(t *testing.T) {
	utils.InitLogger()
	db := setupUserTestDB(t)
	router := setupUserRouter(db)

	w := doJSON(t, router, "GET", "/api/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, "GET", "/api/profile", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
