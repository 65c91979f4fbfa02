package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key
// constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

// insert persists a new blog with its owner reference in a single statement,
// so a crash can never leave the record without attribution.
func (m *BlogModel) insert(ctx context.Context, b *Blog) error {
	query := `
		INSERT INTO blogs (title, author, url, likes, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, version`

	args := []any{b.Title, b.Author, b.URL, b.Likes, b.UserID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt, &b.Version)
	if err != nil {
		switch {
		case ForeignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getByID returns a blog with its owner resolved.
func (m *BlogModel) getByID(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, b.updated_at, b.version,
		       u.username, u.name
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.id = $1`

	var blog Blog

	err := m.db.QueryRowContext(ctx, query, id).Scan(
		&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes,
		&blog.UserID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version,
		&blog.User.Username, &blog.User.Name,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	blog.User.ID = blog.UserID

	return &blog, nil
}

// getAll returns every blog with its owner resolved, in insertion order.
func (m *BlogModel) getAll(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, b.updated_at, b.version,
		       u.username, u.name
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		ORDER BY b.id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var blog Blog
		err := rows.Scan(
			&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes,
			&blog.UserID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version,
			&blog.User.Username, &blog.User.Name,
		)
		if err != nil {
			return nil, err
		}
		blog.User.ID = blog.UserID
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// update replaces every mutable field of the blog. The owner reference is
// immutable and left untouched.
func (m *BlogModel) update(ctx context.Context, id int, title, author, url string, likes int) error {
	query := `
		UPDATE blogs
		SET title = $1, author = $2, url = $3, likes = $4, updated_at = now(), version = version + 1
		WHERE id = $5
		RETURNING version`

	var version int
	err := m.db.QueryRowContext(ctx, query, title, author, url, likes, id).Scan(&version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

// delete removes a blog by id. Deleting an absent id is not an error.
func (m *BlogModel) delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	_, err := m.db.ExecContext(ctx, query, id)
	return err
}
