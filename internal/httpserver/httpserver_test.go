package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"online-bookstore/internal/events"
	"online-bookstore/internal/hash"
	"online-bookstore/internal/logging"
	"online-bookstore/internal/models"
	"online-bookstore/internal/repo"
	"online-bookstore/internal/service"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Book{}, &models.CartItem{}))

	secret := []byte("test-jwt-secret")
	gormRepo := &repo.GormRepo{DB: db}
	producer := events.NewProducer("")

	authSvc := &service.AuthService{
		Repo:      gormRepo,
		Producer:  producer,
		JWTSecret: secret,
		TokenTTL:  15 * time.Minute,
	}
	cartSvc := &service.CartService{Repo: gormRepo, Producer: producer}
	catalogSvc := &service.CatalogService{Repo: gormRepo, Producer: producer}

	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logging.New("error"))

	Register(e, &Deps{
		AuthHandler: &AuthHTTP{Svc: authSvc},
		CartHandler: &CartHTTP{Svc: cartSvc},
		BookHandler: &BookHTTP{Svc: catalogSvc, UploadDir: t.TempDir()},
		JWTSecret:   secret,
		UploadDir:   t.TempDir(),
	})

	return &testEnv{T: t, E: e, DB: db}
}

func (env *testEnv) doJSON(method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)

	var resp map[string]any
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	}
	return rec, resp
}

func (env *testEnv) signupAndLogin(email, password string) string {
	env.T.Helper()

	rec, _ := env.doJSON(http.MethodPost, "/api/users/signup", "", map[string]string{
		"email":    email,
		"password": password,
		"name":     "Test Reader",
	})
	require.Equal(env.T, http.StatusCreated, rec.Code)

	rec, resp := env.doJSON(http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(env.T, http.StatusOK, rec.Code)
	token, _ := resp["token"].(string)
	require.NotEmpty(env.T, token)
	return token
}

func (env *testEnv) loginAdmin() string {
	env.T.Helper()

	pwHash, err := hash.HashPassword("admin-secret")
	require.NoError(env.T, err)
	admin := &models.User{
		Email:        "admin@example.com",
		PasswordHash: pwHash,
		Role:         "admin",
	}
	require.NoError(env.T, env.DB.Create(admin).Error)

	rec, resp := env.doJSON(http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "admin-secret",
	})
	require.Equal(env.T, http.StatusOK, rec.Code)
	token, _ := resp["token"].(string)
	require.NotEmpty(env.T, token)
	return token
}

func (env *testEnv) createBook(title string) *models.Book {
	env.T.Helper()

	book := &models.Book{Title: title, Price: 9.99}
	require.NoError(env.T, env.DB.Create(book).Error)
	return book
}
