package controllers

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/postium/postium/models"
	"github.com/postium/postium/repository"
)

// memDB is a tiny in-memory stand-in for the repository layer so handler
// behavior can be tested without a database.
type memDB struct {
	pageSize int
	nextID   uint

	posts    []models.Post
	groups   []models.Group
	users    []models.User
	comments []models.Comment
	follows  map[[2]uint]bool
}

func newMemDB(pageSize int) *memDB {
	return &memDB{pageSize: pageSize, follows: map[[2]uint]bool{}}
}

func (db *memDB) id() uint {
	db.nextID++
	return db.nextID
}

func (db *memDB) addUser(username string) models.User {
	u := models.User{ID: db.id(), Username: username}
	db.users = append(db.users, u)
	return u
}

func (db *memDB) addGroup(title, slug string) models.Group {
	g := models.Group{ID: db.id(), Title: title, Slug: slug}
	db.groups = append(db.groups, g)
	return g
}

func (db *memDB) addPost(author models.User, group *models.Group, text string) models.Post {
	p := models.Post{
		ID:       db.id(),
		Text:     text,
		PubDate:  time.Now().Add(time.Duration(db.nextID) * time.Second),
		AuthorID: author.ID,
		Author:   author,
	}
	if group != nil {
		gid := group.ID
		p.GroupID = &gid
		p.Group = group
	}
	db.posts = append(db.posts, p)
	return p
}

func (db *memDB) removePost(id uint) {
	kept := db.posts[:0]
	for _, p := range db.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	db.posts = kept
}

func (db *memDB) page(posts []models.Post, page int) ([]models.Post, repository.Pagination) {
	sort.Slice(posts, func(i, j int) bool { return posts[i].PubDate.After(posts[j].PubDate) })
	p := repository.Paginate(int64(len(posts)), page, db.pageSize)
	start := p.Offset()
	end := start + p.PageSize
	if start > len(posts) {
		start = len(posts)
	}
	if end > len(posts) {
		end = len(posts)
	}
	return posts[start:end], p
}

type fakePosts struct{ db *memDB }

func (f *fakePosts) Feed(page int) ([]models.Post, repository.Pagination, error) {
	posts, p := f.db.page(append([]models.Post(nil), f.db.posts...), page)
	return posts, p, nil
}

func (f *fakePosts) FeedByGroup(groupID uint, page int) ([]models.Post, repository.Pagination, error) {
	var filtered []models.Post
	for _, p := range f.db.posts {
		if p.GroupID != nil && *p.GroupID == groupID {
			filtered = append(filtered, p)
		}
	}
	posts, pg := f.db.page(filtered, page)
	return posts, pg, nil
}

func (f *fakePosts) FeedByAuthor(authorID uint, page int) ([]models.Post, repository.Pagination, error) {
	var filtered []models.Post
	for _, p := range f.db.posts {
		if p.AuthorID == authorID {
			filtered = append(filtered, p)
		}
	}
	posts, pg := f.db.page(filtered, page)
	return posts, pg, nil
}

func (f *fakePosts) FeedByFollowed(userID uint, page int) ([]models.Post, repository.Pagination, error) {
	var filtered []models.Post
	for _, p := range f.db.posts {
		if f.db.follows[[2]uint{userID, p.AuthorID}] {
			filtered = append(filtered, p)
		}
	}
	posts, pg := f.db.page(filtered, page)
	return posts, pg, nil
}

func (f *fakePosts) ByAuthorAndID(username string, postID uint) (*models.Post, error) {
	for i := range f.db.posts {
		p := &f.db.posts[i]
		if p.ID == postID && p.Author.Username == username {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePosts) Create(post *models.Post) error {
	post.ID = f.db.id()
	post.PubDate = time.Now().Add(time.Duration(f.db.nextID) * time.Second)
	for _, u := range f.db.users {
		if u.ID == post.AuthorID {
			post.Author = u
		}
	}
	f.db.posts = append(f.db.posts, *post)
	return nil
}

func (f *fakePosts) Update(post *models.Post) error {
	for i := range f.db.posts {
		if f.db.posts[i].ID == post.ID {
			f.db.posts[i].Text = post.Text
			f.db.posts[i].GroupID = post.GroupID
			f.db.posts[i].Image = post.Image
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeGroups struct{ db *memDB }

func (f *fakeGroups) BySlug(slug string) (*models.Group, error) {
	for i := range f.db.groups {
		if f.db.groups[i].Slug == slug {
			return &f.db.groups[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGroups) ByID(id uint) (*models.Group, error) {
	for i := range f.db.groups {
		if f.db.groups[i].ID == id {
			return &f.db.groups[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGroups) All() ([]models.Group, error) {
	return append([]models.Group(nil), f.db.groups...), nil
}

type fakeUsers struct{ db *memDB }

func (f *fakeUsers) ByUsername(username string) (*models.User, error) {
	for i := range f.db.users {
		if f.db.users[i].Username == username {
			return &f.db.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeComments struct{ db *memDB }

func (f *fakeComments) Create(comment *models.Comment) error {
	comment.ID = f.db.id()
	comment.Created = time.Now()
	f.db.comments = append(f.db.comments, *comment)
	return nil
}

func (f *fakeComments) ByPost(postID uint) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.db.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeFollows struct{ db *memDB }

func (f *fakeFollows) Follow(userID, authorID uint) error {
	f.db.follows[[2]uint{userID, authorID}] = true
	return nil
}

func (f *fakeFollows) Unfollow(userID, authorID uint) error {
	delete(f.db.follows, [2]uint{userID, authorID})
	return nil
}

func (f *fakeFollows) IsFollowing(userID, authorID uint) (bool, error) {
	return f.db.follows[[2]uint{userID, authorID}], nil
}

func (db *memDB) followCount() int { return len(db.follows) }
