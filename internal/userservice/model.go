package userservice

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrNotFound          = errors.New("user not found")
)

func newUserModel(db *sql.DB) *UserModel {
	return &UserModel{db: db}
}

func (m *UserModel) insert(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, name, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at, version`

	args := []any{
		u.Username,
		u.Name,
		u.Password.hash,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case err.Error() == "pq: duplicate key value violates unique constraint \"users_username_key\"":
			return ErrDuplicateUsername
		default:
			return err
		}
	}
	return nil
}

func (m *UserModel) getByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, name, password, created_at, updated_at, version
		FROM users
		WHERE username = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.Name, &u.Password.hash, &u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *UserModel) getByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, username, name, created_at, updated_at, version
		FROM users
		WHERE id = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username, &u.Name, &u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// getAllWithBlogs returns every user with their owned blogs resolved, in
// insertion order.
func (m *UserModel) getAllWithBlogs(ctx context.Context) ([]User, error) {
	query := `
		SELECT u.id, u.username, u.name, u.created_at, u.updated_at, u.version,
		       b.id, b.title, b.author, b.url, b.likes
		FROM users u
		LEFT JOIN blogs b ON b.user_id = u.id
		ORDER BY u.id, b.id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}

	for rows.Next() {
		var (
			u      User
			blogID sql.NullInt64
			title  sql.NullString
			author sql.NullString
			url    sql.NullString
			likes  sql.NullInt64
		)

		err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.CreatedAt, &u.UpdatedAt, &u.Version, &blogID, &title, &author, &url, &likes)
		if err != nil {
			return nil, err
		}

		if len(users) == 0 || users[len(users)-1].ID != u.ID {
			u.Blogs = []BlogSummary{}
			users = append(users, u)
		}

		if blogID.Valid {
			last := &users[len(users)-1]
			last.Blogs = append(last.Blogs, BlogSummary{
				ID:     int(blogID.Int64),
				Title:  title.String,
				Author: author.String,
				URL:    url.String,
				Likes:  int(likes.Int64),
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
