package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postium/postium/models"
)

func newFollowRouter(db *memDB, viewer *models.User) *gin.Engine {
	fc := NewFollowController(&fakeUsers{db}, &fakeFollows{db})
	r := gin.New()
	if viewer != nil {
		r.Use(asUser(*viewer))
	}
	r.POST("/:username/follow/", fc.Follow)
	r.POST("/:username/unfollow/", fc.Unfollow)
	return r
}

func doPost(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFollow(t *testing.T) {
	db := newMemDB(10)
	author := db.addUser("leo")
	viewer := db.addUser("anna")
	r := newFollowRouter(db, &viewer)

	w := doPost(t, r, "/leo/follow/")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/follow/", w.Header().Get("Location"))
	assert.True(t, db.follows[[2]uint{viewer.ID, author.ID}])
}

// A repeated follow keeps exactly one edge.
func TestFollowTwiceKeepsOneEdge(t *testing.T) {
	db := newMemDB(10)
	db.addUser("leo")
	viewer := db.addUser("anna")
	r := newFollowRouter(db, &viewer)

	doPost(t, r, "/leo/follow/")
	w := doPost(t, r, "/leo/follow/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, 1, db.followCount())
}

func TestFollowSelfIsIgnored(t *testing.T) {
	db := newMemDB(10)
	viewer := db.addUser("leo")
	r := newFollowRouter(db, &viewer)

	w := doPost(t, r, "/leo/follow/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Zero(t, db.followCount())
}

func TestFollowUnknownUser(t *testing.T) {
	db := newMemDB(10)
	viewer := db.addUser("anna")
	r := newFollowRouter(db, &viewer)

	w := doPost(t, r, "/nobody/follow/")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, db.followCount())
}

func TestUnfollow(t *testing.T) {
	db := newMemDB(10)
	author := db.addUser("leo")
	viewer := db.addUser("anna")
	db.follows[[2]uint{viewer.ID, author.ID}] = true
	r := newFollowRouter(db, &viewer)

	w := doPost(t, r, "/leo/unfollow/")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Zero(t, db.followCount())
}

// Unfollowing someone never followed succeeds and changes nothing.
func TestUnfollowMissingEdgeIsNoop(t *testing.T) {
	db := newMemDB(10)
	db.addUser("leo")
	viewer := db.addUser("anna")
	r := newFollowRouter(db, &viewer)

	w := doPost(t, r, "/leo/unfollow/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Zero(t, db.followCount())
}

func TestFollowRequiresAuth(t *testing.T) {
	db := newMemDB(10)
	db.addUser("leo")
	r := newFollowRouter(db, nil)

	assert.Equal(t, http.StatusUnauthorized, doPost(t, r, "/leo/follow/").Code)
	assert.Equal(t, http.StatusUnauthorized, doPost(t, r, "/leo/unfollow/").Code)
}
