package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initData(user string) string {
	v := url.Values{}
	v.Set("auth_date", "1741600000")
	if user != "" {
		v.Set("user", user)
	}
	v.Set("hash", "ignored-in-debug")
	return v.Encode()
}

func TestExtractTelegramData(t *testing.T) {
	data, err := ExtractTelegramData(initData(`{"id":4242,"username":"ada"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(4242), data.ID)
	assert.Equal(t, "ada", data.Username)
	assert.Equal(t, int64(1741600000), data.AuthDate.Unix())

	_, err = ExtractTelegramData(initData(""))
	assert.ErrorIs(t, err, ErrMissingUser)

	_, err = ExtractTelegramData(initData(`{"username":"ghost"}`))
	assert.ErrorIs(t, err, ErrMissingUser)

	_, err = ExtractTelegramData("auth_date=soon")
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a := NewTelegramAuth("token", true)

	tests := []struct {
		name       string
		optional   bool
		header     string
		wantStatus int
		wantUserID int64
	}{
		{name: "Required without header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "Optional without header", optional: true, header: "", wantStatus: http.StatusOK},
		{name: "Wrong scheme", optional: true, header: "Bearer abc", wantStatus: http.StatusUnauthorized},
		{name: "Valid debug data", header: "Telegram " + initData(`{"id":7}`), wantStatus: http.StatusOK, wantUserID: 7},
		{name: "Broken user payload", header: "Telegram " + initData(`{`), wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := a.TelegramAuthMiddleware()
			if tt.optional {
				handler = a.OptionalTelegramAuthMiddleware()
			}

			var gotID int64
			r := gin.New()
			r.GET("/", handler, func(c *gin.Context) {
				if u, ok := UserFromContext(c); ok {
					gotID = u.ID
				}
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantUserID, gotID)
		})
	}
}

func TestMiddleware_ValidatesSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a := NewTelegramAuth("token", false)

	r := gin.New()
	r.GET("/", a.TelegramAuthMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Telegram "+initData(`{"id":7}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
