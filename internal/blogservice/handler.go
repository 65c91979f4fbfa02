package blogservice

import (
	"context"
	"database/sql"
	"time"

	"github.com/kmaxwell/bloglist/internal/common"
)

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

// CreateBlog persists a new blog owned by the requesting user. A missing
// likes field defaults to 0 before the write.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validatePayload(v, req.Title, req.URL, req.Likes)
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := Blog{
		Title:  *req.Title,
		URL:    *req.URL,
		UserID: req.UserID,
	}
	if req.Author != nil {
		blog.Author = *req.Author
	}
	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	err := s.m.insert(ctx, &blog)
	if err != nil {
		return nil, err
	}

	s.invalidate(blog.ID)

	return s.GetBlogByID(ctx, blog.ID)
}

// GetBlogByID returns a blog post with its owner resolved.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyBlog(id)); ok {
		return cached.(*Blog), nil
	}

	blog, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlog(id), blog, time.Minute)

	return blog, nil
}

// GetBlogs returns every blog post with its owner resolved.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	if cached, ok := s.c.Get(common.CacheKeyBlogs()); ok {
		return cached.([]Blog), nil
	}

	blogs, err := s.m.getAll(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlogs(), blogs, time.Minute)

	return blogs, nil
}

// UpdateBlog replaces every mutable field of an existing blog and returns the
// updated record. An unknown id reports ErrRecordNotFound before the payload
// is examined, so a bad payload aimed at a missing record still comes back as
// not found.
func (s *BlogService) UpdateBlog(ctx context.Context, id int, req *UpdateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if _, err := s.m.getByID(ctx, id); err != nil {
		return nil, err
	}

	validatePayload(v, req.Title, req.URL, req.Likes)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	author := ""
	if req.Author != nil {
		author = *req.Author
	}
	likes := 0
	if req.Likes != nil {
		likes = *req.Likes
	}

	err := s.m.update(ctx, id, *req.Title, author, *req.URL, likes)
	if err != nil {
		return nil, err
	}

	s.invalidate(id)

	return s.GetBlogByID(ctx, id)
}

// DeleteBlog removes a blog post by id. It succeeds whether or not the id
// exists, so repeated deletes are indistinguishable from the first.
func (s *BlogService) DeleteBlog(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	err := s.m.delete(ctx, id)
	if err != nil {
		return err
	}

	s.invalidate(id)

	return nil
}

// GetStats summarizes the whole collection using the aggregation helpers.
func (s *BlogService) GetStats(ctx context.Context) (*Stats, error) {
	if cached, ok := s.c.Get(common.CacheKeyBlogStats()); ok {
		return cached.(*Stats), nil
	}

	blogs, err := s.GetBlogs(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Count:      len(blogs),
		TotalLikes: TotalLikes(blogs),
		Favorite:   FavoriteBlog(blogs),
	}

	s.c.Set(common.CacheKeyBlogStats(), stats, time.Minute)

	return stats, nil
}

func (s *BlogService) invalidate(id int) {
	s.c.Delete(common.CacheKeyBlog(id))
	s.c.Delete(common.CacheKeyBlogs())
	s.c.Delete(common.CacheKeyBlogStats())
}
