package userservice

import (
	"database/sql"
	"time"

	"github.com/kmaxwell/bloglist/internal/common"
)

const (
	AccessTokenTime time.Duration = 7 * 24 * time.Hour

	// bcryptCost matches the fixed work factor used since the first release.
	bcryptCost = 10

	MinUsernameLength = 3
	MinPasswordLength = 3
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m      *UserModel
	mb     common.MessageProducer
	c      *common.Cache
	secret []byte
}

type UserModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id,string"`
	Username  string    `json:"username"`
	Name      string    `json:"name,omitempty"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"-"`

	// Blogs holds the user's owned blogs, resolved for output.
	Blogs []BlogSummary `json:"blogs"`
}

type Password struct {
	plain string
	hash  []byte
}

// BlogSummary is the shape of an owned blog inside a user record. It stays in
// this package so the blog package never has to be imported here.
type BlogSummary struct {
	ID     int    `json:"id,string"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// LoginResult is the body of a successful login response.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}
