package tokens

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getAlby/votehub.go/common"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("SECRET")

func TestGenerateAndParseAccessToken(t *testing.T) {
	token, err := GenerateAccessToken(secret, 3600, "bob.testnet")
	require.NoError(t, err)

	account, err := ParseAccessToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "bob.testnet", account)

	_, err = ParseAccessToken([]byte("OTHER"), token)
	assert.Error(t, err)
}

func TestExpiredAccessToken(t *testing.T) {
	token, err := GenerateAccessToken(secret, -10, "bob.testnet")
	require.NoError(t, err)
	_, err = ParseAccessToken(secret, token)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	e := echo.New()
	handler := Middleware(secret)(func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(common.CallerContextKey).(string))
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		assert.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := GenerateAccessToken(secret, 3600, "bob.testnet")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		assert.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "bob.testnet", rec.Body.String())
	})
}
