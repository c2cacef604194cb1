package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Config in TestMain allows 4 requests per minute, so the bucket holds a
// burst of 2.
func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.POST("/write", RateLimit(), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "ok")
	})

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/write", nil)
		req.RemoteAddr = ip + ":12345"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, do("10.0.0.1"))
	require.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))

	// Another client has its own bucket.
	assert.Equal(t, http.StatusOK, do("10.0.0.2"))
}
