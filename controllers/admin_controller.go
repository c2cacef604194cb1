package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/postium/postium/utils"
)

// AdminController exposes operational escape hatches to the configured
// admin usernames only.
type AdminController struct {
	cache *utils.PageCache
}

// NewAdminController creates an AdminController.
func NewAdminController(cache *utils.PageCache) *AdminController {
	return &AdminController{cache: cache}
}

// ClearCache drops every cached page rendering. This is the explicit
// clear used operationally and by tests; end users only ever see entries
// expire on their own.
func (a *AdminController) ClearCache(ctx *gin.Context) {
	if !isAdmin(ctx) {
		utils.Error(ctx, http.StatusForbidden, 40310, "admin access required")
		return
	}

	a.cache.Clear()
	utils.Success(ctx, gin.H{"message": "cache cleared"})
}
