package blogservice

import (
	"database/sql"
	"time"

	"github.com/kmaxwell/bloglist/internal/common"
)

type Blog struct {
	ID     int    `json:"id,string"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`

	// User is the owner reference, resolved for output. The raw foreign key
	// is never serialized.
	User   Owner `json:"user"`
	UserID int   `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"-"`
}

// Owner is the populated form of a blog's owner reference.
type Owner struct {
	ID       int    `json:"id,string"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}

// CreateBlogRequest carries the inbound payload for a new blog. Title, URL
// and Likes are pointers so an absent key can be told apart from a zero
// value: title and url must be present, a missing likes defaults to 0.
type CreateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
	UserID int     `json:"-"`
}

// UpdateBlogRequest is a full replacement of a blog's mutable fields.
type UpdateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}
