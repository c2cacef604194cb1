package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/postium/postium/models"
	"github.com/postium/postium/repository"
	"github.com/postium/postium/utils"
)

// FeedController serves the four feed variants and the post detail page.
type FeedController struct {
	posts    PostStore
	groups   GroupStore
	users    UserStore
	comments CommentStore
	follows  FollowStore
}

// NewFeedController creates a FeedController.
func NewFeedController(posts PostStore, groups GroupStore, users UserStore, comments CommentStore, follows FollowStore) *FeedController {
	return &FeedController{posts: posts, groups: groups, users: users, comments: comments, follows: follows}
}

// Index returns the global feed, newest first. The route is wrapped by
// the page cache, so within the TTL this handler is not re-entered.
func (f *FeedController) Index(ctx *gin.Context) {
	page := repository.ParsePage(ctx.Query("page"))
	posts, pagination, err := f.posts.Feed(page)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to load feed")
		return
	}
	utils.Success(ctx, gin.H{"posts": posts, "pagination": pagination})
}

// GroupFeed returns the posts filed under the slugged group.
func (f *FeedController) GroupFeed(ctx *gin.Context) {
	group, err := f.groups.BySlug(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "group not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to load group")
		return
	}

	page := repository.ParsePage(ctx.Query("page"))
	posts, pagination, err := f.posts.FeedByGroup(group.ID, page)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to load group feed")
		return
	}
	utils.Success(ctx, gin.H{"group": group, "posts": posts, "pagination": pagination})
}

// Profile returns one author's posts plus whether the viewer already
// follows them.
func (f *FeedController) Profile(ctx *gin.Context) {
	author, err := f.users.ByUsername(ctx.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40411, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to load user")
		return
	}

	following := false
	if viewerID, ok := getUserID(ctx); ok {
		if flag, err := f.follows.IsFollowing(viewerID, author.ID); err == nil {
			following = flag
		}
	}

	page := repository.ParsePage(ctx.Query("page"))
	posts, pagination, err := f.posts.FeedByAuthor(author.ID, page)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50014, "failed to load profile feed")
		return
	}
	utils.Success(ctx, gin.H{
		"author":     author,
		"posts":      posts,
		"pagination": pagination,
		"following":  following,
	})
}

// PostDetail returns one post with its comments and the viewer's follow
// status for its author.
func (f *FeedController) PostDetail(ctx *gin.Context) {
	post, ok := fetchPost(ctx, f.posts)
	if !ok {
		return
	}

	comments, err := f.comments.ByPost(post.ID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50015, "failed to load comments")
		return
	}

	following := false
	if viewerID, ok := getUserID(ctx); ok {
		if flag, err := f.follows.IsFollowing(viewerID, post.AuthorID); err == nil {
			following = flag
		}
	}

	utils.Success(ctx, gin.H{
		"post":      post,
		"author":    post.Author,
		"comments":  comments,
		"following": following,
	})
}

// FollowFeed returns posts from the authors the requester follows.
func (f *FeedController) FollowFeed(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	page := repository.ParsePage(ctx.Query("page"))
	posts, pagination, err := f.posts.FeedByFollowed(userID, page)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50016, "failed to load follow feed")
		return
	}
	utils.Success(ctx, gin.H{"posts": posts, "pagination": pagination})
}

// fetchPost resolves the (username, post_id) URL pair or writes a 404.
func fetchPost(ctx *gin.Context, posts PostStore) (*models.Post, bool) {
	postID, ok := parsePostID(ctx.Param("post_id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40412, "post not found")
		return nil, false
	}

	post, err := posts.ByAuthorAndID(ctx.Param("username"), postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40412, "post not found")
			return nil, false
		}
		utils.Error(ctx, http.StatusInternalServerError, 50017, "failed to load post")
		return nil, false
	}
	return post, true
}

func parsePostID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func postDetailPath(username string, postID uint) string {
	return "/" + username + "/" + strconv.FormatUint(uint64(postID), 10) + "/"
}
