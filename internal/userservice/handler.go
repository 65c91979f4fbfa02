package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/kmaxwell/bloglist/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid username or password")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, c *common.Cache, secret string) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		c:      c,
		secret: []byte(secret),
	}
}

// RegisterUser creates a new user account and publishes a user.created event.
// The password hash is derived here; a raw hash is never accepted from a
// caller.
func (s *UserService) RegisterUser(ctx context.Context, username, password, name string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Name:     name,
		Blogs:    []BlogSummary{},
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insert(ctx, &u)
	if err != nil {
		return nil, err
	}

	data := struct {
		Username string
		Name     string
	}{
		Username: u.Username,
		Name:     u.Name,
	}

	eventData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, eventData, common.UserCreatedKey, common.UserExchange)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// LoginUser checks the credentials and returns a signed access token together
// with the user's public identity. Every failure mode collapses into
// ErrAuthenticationFailure so the response never reveals which check failed.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrAuthenticationFailure
	}

	user, err := s.m.getByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthenticationFailure
	}

	token, err := signAccessToken(s.secret, user.ID, AccessTokenTime)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

// AuthenticateToken verifies a bearer token and resolves the caller's
// identity.
func (s *UserService) AuthenticateToken(ctx context.Context, token string) (*User, error) {
	id, err := parseAccessToken(s.secret, token)
	if err != nil {
		return nil, err
	}

	return s.GetUserByID(ctx, id)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	if cached, ok := s.c.Get(common.CacheKeyUser(id)); ok {
		return cached.(*User), nil
	}

	user, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyUser(id), user, time.Minute)

	return user, nil
}

// GetUsers returns every user with their blog collections resolved. The
// password hash never leaves this package: the field is unexported and the
// wrapper is tagged json:"-".
func (s *UserService) GetUsers(ctx context.Context) ([]User, error) {
	return s.m.getAllWithBlogs(ctx)
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}
