package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postium/postium/config"
	"github.com/postium/postium/models"
	"github.com/postium/postium/utils"
)

func newAdminRouter(cache *utils.PageCache, viewer *models.User) *gin.Engine {
	ac := NewAdminController(cache)
	r := gin.New()
	if viewer != nil {
		r.Use(asUser(*viewer))
	}
	r.POST("/admin/cache/clear", ac.ClearCache)
	return r
}

func TestClearCache(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_USERNAMES", "root")
	config.Load()

	cache := utils.NewPageCache(time.Minute, nil)
	cache.Set("/", utils.CachedPage{ContentType: "application/json", Body: []byte("{}")})

	admin := models.User{ID: 1, Username: "root"}
	w := doPost(t, newAdminRouter(cache, &admin), "/admin/cache/clear")
	require.Equal(t, http.StatusOK, w.Code)
	_, hit := cache.Get("/")
	assert.False(t, hit)
}

func TestClearCacheForbiddenForNonAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	config.Load()

	cache := utils.NewPageCache(time.Minute, nil)
	cache.Set("/", utils.CachedPage{ContentType: "application/json", Body: []byte("{}")})

	user := models.User{ID: 2, Username: "anna"}
	w := doPost(t, newAdminRouter(cache, &user), "/admin/cache/clear")
	assert.Equal(t, http.StatusForbidden, w.Code)
	_, hit := cache.Get("/")
	assert.True(t, hit)

	w = doPost(t, newAdminRouter(cache, nil), "/admin/cache/clear")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
