package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/postium/postium/utils"
)

// CachePage serves GET responses from the page cache keyed by path plus
// query string, so each page number is a separate entry. Mutations do
// not invalidate entries; staleness within the TTL is accepted.
func CachePage(cache *utils.PageCache) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		key := ctx.Request.URL.Path
		if q := ctx.Request.URL.RawQuery; q != "" {
			key += "?" + q
		}

		if page, ok := cache.Get(key); ok {
			ctx.Data(http.StatusOK, page.ContentType, page.Body)
			ctx.Abort()
			return
		}

		capture := &bodyCapture{ResponseWriter: ctx.Writer}
		ctx.Writer = capture
		ctx.Next()

		if capture.Status() == http.StatusOK {
			cache.Set(key, utils.CachedPage{
				ContentType: capture.Header().Get("Content-Type"),
				Body:        capture.buf.Bytes(),
			})
		}
	}
}

type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapture) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
