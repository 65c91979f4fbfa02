package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testBlogs() []Blog {
	return []Blog{
		{ID: 1, Title: "React patterns", Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: 7},
		{ID: 2, Title: "Go To Statement Considered Harmful", Author: "Edsger W. Dijkstra", URL: "https://example.com/goto", Likes: 5},
		{ID: 3, Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", URL: "https://example.com/canonical", Likes: 12},
		{ID: 4, Title: "First class tests", Author: "Robert C. Martin", URL: "https://example.com/tests", Likes: 10},
		{ID: 5, Title: "TDD harms architecture", Author: "Robert C. Martin", URL: "https://example.com/tdd", Likes: 0},
		{ID: 6, Title: "Type wars", Author: "Robert C. Martin", URL: "https://example.com/typewars", Likes: 2},
	}
}

func TestTotalLikes(t *testing.T) {
	testCases := []struct {
		name  string
		blogs []Blog
		want  int
	}{
		{
			name:  "empty list",
			blogs: []Blog{},
			want:  0,
		},
		{
			name:  "nil list",
			blogs: nil,
			want:  0,
		},
		{
			name:  "single blog",
			blogs: testBlogs()[:1],
			want:  7,
		},
		{
			name:  "many blogs",
			blogs: testBlogs(),
			want:  36,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TotalLikes(tc.blogs))
		})
	}
}

func TestTotalLikesMatchesArithmeticSum(t *testing.T) {
	blogs := testBlogs()

	sum := 0
	for _, b := range blogs {
		sum += b.Likes
	}

	assert.Equal(t, sum, TotalLikes(blogs))
}

func TestFavoriteBlog(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		assert.Nil(t, FavoriteBlog(nil))
		assert.Nil(t, FavoriteBlog([]Blog{}))
	})

	t.Run("single blog", func(t *testing.T) {
		blogs := testBlogs()[:1]
		got := FavoriteBlog(blogs)
		assert.Equal(t, &blogs[0], got)
	})

	t.Run("returns the most liked blog", func(t *testing.T) {
		blogs := testBlogs()
		got := FavoriteBlog(blogs)

		assert.NotNil(t, got)
		assert.Equal(t, "Canonical string reduction", got.Title)

		for _, b := range blogs {
			assert.GreaterOrEqual(t, got.Likes, b.Likes)
		}
	})

	t.Run("ties break last-seen-wins", func(t *testing.T) {
		blogs := []Blog{
			{ID: 1, Title: "first", Likes: 9},
			{ID: 2, Title: "second", Likes: 9},
		}

		got := FavoriteBlog(blogs)
		assert.Equal(t, "second", got.Title)
	})
}
