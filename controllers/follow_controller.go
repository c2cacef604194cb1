package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/postium/postium/utils"
)

// FollowController manages follow edges between the requester and an
// author named in the URL.
type FollowController struct {
	users   UserStore
	follows FollowStore
}

// NewFollowController creates a FollowController.
func NewFollowController(users UserStore, follows FollowStore) *FollowController {
	return &FollowController{users: users, follows: follows}
}

// Follow adds the requester->author edge and lands on the follow feed.
// Following yourself is silently ignored; following twice leaves one edge.
func (f *FollowController) Follow(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	author, err := f.users.ByUsername(ctx.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40411, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load user")
		return
	}

	if author.ID != userID {
		if err := f.follows.Follow(userID, author.ID); err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to follow")
			return
		}
	}

	utils.Redirect(ctx, "/follow/")
}

// Unfollow removes the requester->author edge and lands on the global
// feed. A missing edge is treated as already unfollowed.
func (f *FollowController) Unfollow(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	author, err := f.users.ByUsername(ctx.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40411, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load user")
		return
	}

	if err := f.follows.Unfollow(userID, author.ID); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to unfollow")
		return
	}

	utils.Redirect(ctx, "/")
}
