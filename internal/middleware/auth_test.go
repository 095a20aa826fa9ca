package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"online-bookstore/internal/tokens"
)

var testSecret = []byte("test-jwt-secret")

func doAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := Auth(testSecret)(next)(c)
	return rec, c, err
}

func TestAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	_, _, err := doAuth(t, "")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAuth_NotBearer(t *testing.T) {
	t.Parallel()

	_, _, err := doAuth(t, "Basic dXNlcjpwYXNz")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	t.Parallel()

	_, _, err := doAuth(t, "Bearer not-a-jwt")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, "invalid token", he.Message)
}

func TestAuth_ExpiredToken_DistinctMessage(t *testing.T) {
	t.Parallel()

	token, err := tokens.Issue(uuid.New(), "user", -time.Minute, testSecret)
	require.NoError(t, err)

	_, _, authErr := doAuth(t, "Bearer "+token)
	he, ok := authErr.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, "token expired", he.Message)
}

func TestAuth_ValidToken_AttachesIdentity(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	token, err := tokens.Issue(userID, "admin", time.Hour, testSecret)
	require.NoError(t, err)

	rec, c, authErr := doAuth(t, "Bearer "+token)
	require.NoError(t, authErr)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, userID, c.Get(ContextUserID))
	assert.Equal(t, "admin", c.Get(ContextRole))

	got, err := UserIDFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	tests := []struct {
		name     string
		role     string
		wantCode int
		wantErr  bool
	}{
		{name: "admin allowed", role: "admin", wantCode: http.StatusOK},
		{name: "user forbidden", role: "user", wantErr: true},
		{name: "missing role forbidden", role: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.role != "" {
				c.Set(ContextRole, tt.role)
			}

			err := RequireRole("admin")(next)(c)
			if tt.wantErr {
				he, ok := err.(*echo.HTTPError)
				require.True(t, ok)
				assert.Equal(t, http.StatusForbidden, he.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
