package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/postium/postium/config"
	"github.com/postium/postium/models"
	"github.com/postium/postium/utils"
)

// PostController handles post creation and editing, comment creation and
// image uploads.
type PostController struct {
	posts    PostStore
	groups   GroupStore
	comments CommentStore
}

// NewPostController creates a PostController.
func NewPostController(posts PostStore, groups GroupStore, comments CommentStore) *PostController {
	return &PostController{posts: posts, groups: groups, comments: comments}
}

type postForm struct {
	Text    string `json:"text"`
	GroupID *uint  `json:"group_id"`
	Image   string `json:"image"`
}

// validate sanitizes the form and returns field errors for anything that
// would prevent persisting.
func (p *PostController) validate(form *postForm) map[string]string {
	fields := map[string]string{}

	form.Text = utils.SanitizeAndTrim(form.Text)
	if form.Text == "" {
		fields["text"] = "this field is required"
	}

	if form.GroupID != nil {
		if _, err := p.groups.ByID(*form.GroupID); err != nil {
			fields["group"] = "select a valid group"
		}
	}
	return fields
}

// NewPostForm returns the data needed to render the submission form.
func (p *PostController) NewPostForm(ctx *gin.Context) {
	groups, err := p.groups.All()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load groups")
		return
	}
	utils.Success(ctx, gin.H{"groups": groups})
}

// CreatePost persists a new post for the authenticated user and sends
// them back to the global feed. Validation failures create nothing.
func (p *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var form postForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	if fields := p.validate(&form); len(fields) > 0 {
		utils.ValidationError(ctx, 40021, fields)
		return
	}

	post := models.Post{
		Text:     form.Text,
		AuthorID: userID,
		GroupID:  form.GroupID,
		Image:    form.Image,
	}
	if err := p.posts.Create(&post); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to create post")
		return
	}

	utils.Redirect(ctx, "/")
}

// EditPostForm returns the post for form prefill. Non-authors are sent
// to the post detail page instead of the form.
func (p *PostController) EditPostForm(ctx *gin.Context) {
	username := ctx.Param("username")
	if requester, ok := getUsername(ctx); !ok || requester != username {
		postID, _ := parsePostID(ctx.Param("post_id"))
		utils.Redirect(ctx, postDetailPath(username, postID))
		return
	}

	post, ok := fetchPost(ctx, p.posts)
	if !ok {
		return
	}

	groups, err := p.groups.All()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load groups")
		return
	}
	utils.Success(ctx, gin.H{"post": post, "groups": groups})
}

// UpdatePost applies an author's edit and redirects to the post detail
// page. The author gate compares the URL's username segment against the
// authenticated identity, mirroring how the edit URL is published.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	username := ctx.Param("username")
	if requester, ok := getUsername(ctx); !ok || requester != username {
		postID, _ := parsePostID(ctx.Param("post_id"))
		utils.Redirect(ctx, postDetailPath(username, postID))
		return
	}

	post, ok := fetchPost(ctx, p.posts)
	if !ok {
		return
	}

	var form postForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	if fields := p.validate(&form); len(fields) > 0 {
		utils.ValidationError(ctx, 40023, fields)
		return
	}

	post.Text = form.Text
	post.GroupID = form.GroupID
	if form.Image != "" {
		post.Image = form.Image
	}
	if err := p.posts.Update(post); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to update post")
		return
	}

	utils.Redirect(ctx, postDetailPath(username, post.ID))
}

// CommentForm returns the post a comment form is attached to.
func (p *PostController) CommentForm(ctx *gin.Context) {
	post, ok := fetchPost(ctx, p.posts)
	if !ok {
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// CreateComment attaches a comment to the addressed post and redirects
// to the post detail page. Empty text creates nothing.
func (p *PostController) CreateComment(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	post, ok := fetchPost(ctx, p.posts)
	if !ok {
		return
	}

	var form struct {
		Text string `json:"text"`
	}
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}

	text := utils.SanitizeAndTrim(form.Text)
	if text == "" {
		utils.ValidationError(ctx, 40025, map[string]string{"text": "this field is required"})
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: userID,
		Text:     text,
	}
	if err := p.comments.Create(&comment); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to create comment")
		return
	}

	utils.Redirect(ctx, postDetailPath(ctx.Param("username"), post.ID))
}

var imageExtensions = map[string]bool{
	".gif":  true,
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

// UploadImage stores a post image under a date-sharded directory and
// returns the public path to reference from the post form.
func (p *PostController) UploadImage(ctx *gin.Context) {
	if _, ok := getUserID(ctx); !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	file, header, err := ctx.Request.FormFile("image")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "no image uploaded")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !imageExtensions[ext] {
		utils.Error(ctx, http.StatusBadRequest, 40031, "unsupported image type")
		return
	}

	cfg := config.Get()
	maxSize := int64(cfg.MaxUploadMB) << 20
	if header.Size > maxSize {
		utils.Error(ctx, http.StatusBadRequest, 40032, fmt.Sprintf("image exceeds %dMB", cfg.MaxUploadMB))
		return
	}

	now := time.Now()
	dir := filepath.Join(cfg.UploadDir, now.Format("2006"), now.Format("01"), now.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to create upload directory")
		return
	}

	name := uuid.NewString() + ext
	dstPath := filepath.Join(dir, name)
	out, err := os.Create(dstPath)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to save image")
		return
	}
	defer out.Close()

	written, err := io.Copy(out, io.LimitReader(file, maxSize+1))
	if err != nil || written > maxSize {
		_ = os.Remove(dstPath)
		if written > maxSize {
			utils.Error(ctx, http.StatusBadRequest, 40032, fmt.Sprintf("image exceeds %dMB", cfg.MaxUploadMB))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to write image")
		return
	}

	utils.Success(ctx, gin.H{"image": "/" + filepath.ToSlash(dstPath)})
}
