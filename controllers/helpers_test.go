package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/postium/postium/middleware"
	"github.com/postium/postium/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser injects an authenticated identity without going through JWT parsing.
func asUser(u models.User) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.ContextUserIDKey, u.ID)
		ctx.Set(middleware.ContextUsernameKey, u.Username)
		ctx.Next()
	}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doGET(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

type feedPayload struct {
	Posts []struct {
		ID   uint   `json:"id"`
		Text string `json:"text"`
	} `json:"posts"`
	Pagination struct {
		Page        int  `json:"page"`
		NumPages    int  `json:"num_pages"`
		Total       int  `json:"total"`
		HasNext     bool `json:"has_next"`
		HasPrevious bool `json:"has_previous"`
	} `json:"pagination"`
}

func feedData(t *testing.T, w *httptest.ResponseRecorder) feedPayload {
	t.Helper()
	env := decode(t, w)
	var fp feedPayload
	require.NoError(t, json.Unmarshal(env.Data, &fp))
	return fp
}
