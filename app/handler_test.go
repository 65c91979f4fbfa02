package main

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Blogs    []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		URL   string `json:"url"`
		Likes int    `json:"likes"`
	} `json:"blogs"`
}

type blogResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	User   struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Name     string `json:"name"`
	} `json:"user"`
}

type errorResponse struct {
	Error any `json:"error"`
}

func registerAndLogin(t *testing.T, ts *testServer, username, password string) string {
	t.Helper()

	status, _, _ := ts.post(t, "/api/users", map[string]any{
		"username": username,
		"name":     "Test User",
		"password": password,
	}, nil)
	assert.Equal(t, http.StatusCreated, status)

	status, _, body := ts.post(t, "/api/login", map[string]any{
		"username": username,
		"password": password,
	}, nil)
	assert.Equal(t, http.StatusOK, status)

	var result struct {
		Token string `json:"token"`
	}
	unmarshalResponse(t, body, &result)
	assert.NotEmpty(t, result.Token)

	return result.Token
}

func TestRegisterUserHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	testCases := []struct {
		name       string
		payload    any
		wantStatus int
		wantError  string
		wantCount  int
	}{
		{
			name: "valid request",
			payload: map[string]any{
				"username": "testuser",
				"name":     "Test User",
				"password": "sekret",
			},
			wantStatus: http.StatusCreated,
			wantCount:  1,
		},
		{
			name: "short username",
			payload: map[string]any{
				"username": "ab",
				"password": "sekret",
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid username or password",
			wantCount:  1,
		},
		{
			name: "short password",
			payload: map[string]any{
				"username": "another",
				"password": "ab",
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid username or password",
			wantCount:  1,
		},
		{
			// a collision reports the same generic message as a bad field
			name: "duplicate username",
			payload: map[string]any{
				"username": "testuser",
				"password": "sekret",
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid username or password",
			wantCount:  1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/api/users", tc.payload, nil)
			assert.Equal(t, tc.wantStatus, status)

			if tc.wantError != "" {
				var got errorResponse
				unmarshalResponse(t, body, &got)
				assert.Equal(t, tc.wantError, got.Error)
			} else {
				var got userResponse
				unmarshalResponse(t, body, &got)
				assert.Equal(t, "testuser", got.Username)
				assert.NotEmpty(t, got.ID)
				assert.NotContains(t, strings.ToLower(string(body)), "password")
			}

			var count int
			err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
			assert.NoError(t, err)
			assert.Equal(t, tc.wantCount, count)
		})
	}
}

func TestLoginUserHandler(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	status, _, _ := ts.post(t, "/api/users", map[string]any{
		"username": "testuser",
		"name":     "Test User",
		"password": "sekret",
	}, nil)
	assert.Equal(t, http.StatusCreated, status)

	t.Run("valid credentials", func(t *testing.T) {
		status, _, body := ts.post(t, "/api/login", map[string]any{
			"username": "testuser",
			"password": "sekret",
		}, nil)
		assert.Equal(t, http.StatusOK, status)

		var result struct {
			Token    string `json:"token"`
			Username string `json:"username"`
			Name     string `json:"name"`
		}
		unmarshalResponse(t, body, &result)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "testuser", result.Username)
		assert.Equal(t, "Test User", result.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		status, _, body := ts.post(t, "/api/login", map[string]any{
			"username": "testuser",
			"password": "wrong",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, status)

		var got errorResponse
		unmarshalResponse(t, body, &got)
		assert.Equal(t, "invalid username or password", got.Error)
	})

	t.Run("unknown username", func(t *testing.T) {
		status, _, _ := ts.post(t, "/api/login", map[string]any{
			"username": "nobody",
			"password": "sekret",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestBlogHandlers(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	token := registerAndLogin(t, ts, "testuser", "sekret")

	blogCount := func() int {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM blogs").Scan(&count)
		assert.NoError(t, err)
		return count
	}

	t.Run("create without token is rejected", func(t *testing.T) {
		status, _, _ := ts.post(t, "/api/blogs", map[string]any{
			"title": "A Blog",
			"url":   "https://example.com/a",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, 0, blogCount())
	})

	t.Run("create with invalid token is rejected", func(t *testing.T) {
		bad := "not.a.token"
		status, _, _ := ts.post(t, "/api/blogs", map[string]any{
			"title": "A Blog",
			"url":   "https://example.com/a",
		}, &bad)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, 0, blogCount())
	})

	t.Run("create without title is rejected", func(t *testing.T) {
		status, _, _ := ts.post(t, "/api/blogs", map[string]any{
			"url": "https://example.com/a",
		}, &token)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, 0, blogCount())
	})

	t.Run("create without url is rejected", func(t *testing.T) {
		status, _, _ := ts.post(t, "/api/blogs", map[string]any{
			"title": "A Blog",
		}, &token)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, 0, blogCount())
	})

	var created blogResponse

	t.Run("create defaults likes to zero", func(t *testing.T) {
		status, _, body := ts.post(t, "/api/blogs", map[string]any{
			"title":  "A Blog",
			"author": "Test Author",
			"url":    "https://example.com/a",
		}, &token)
		assert.Equal(t, http.StatusCreated, status)

		unmarshalResponse(t, body, &created)
		assert.Equal(t, 0, created.Likes)
		assert.Equal(t, "testuser", created.User.Username)
		assert.Equal(t, 1, blogCount())
	})

	t.Run("create attributes the blog to the caller", func(t *testing.T) {
		status, _, body := ts.get(t, "/api/users", nil)
		assert.Equal(t, http.StatusOK, status)

		var users []userResponse
		unmarshalResponse(t, body, &users)
		assert.Len(t, users, 1)
		assert.Len(t, users[0].Blogs, 1)
		assert.Equal(t, "A Blog", users[0].Blogs[0].Title)
		assert.Equal(t, created.User.ID, users[0].ID)
	})

	t.Run("list populates the owner", func(t *testing.T) {
		status, _, body := ts.get(t, "/api/blogs", nil)
		assert.Equal(t, http.StatusOK, status)

		var blogs []blogResponse
		unmarshalResponse(t, body, &blogs)
		assert.Len(t, blogs, 1)
		assert.Equal(t, "testuser", blogs[0].User.Username)
		assert.Equal(t, "Test User", blogs[0].User.Name)
	})

	t.Run("stats agree with the collection", func(t *testing.T) {
		status, _, body := ts.post(t, "/api/blogs", map[string]any{
			"title": "B Blog",
			"url":   "https://example.com/b",
			"likes": 12,
		}, &token)
		assert.Equal(t, http.StatusCreated, status)

		status, _, body = ts.get(t, "/api/blogs/stats", nil)
		assert.Equal(t, http.StatusOK, status)

		var stats struct {
			Count      int          `json:"count"`
			TotalLikes int          `json:"totalLikes"`
			Favorite   blogResponse `json:"favorite"`
		}
		unmarshalResponse(t, body, &stats)
		assert.Equal(t, 2, stats.Count)
		assert.Equal(t, 12, stats.TotalLikes)
		assert.Equal(t, "B Blog", stats.Favorite.Title)
	})

	t.Run("update replaces the record", func(t *testing.T) {
		status, _, body := ts.put(t, "/api/blogs/"+created.ID, map[string]any{
			"title": "A Blog, Revised",
			"url":   "https://example.com/a2",
			"likes": 7,
		}, nil)
		assert.Equal(t, http.StatusOK, status)

		var updated blogResponse
		unmarshalResponse(t, body, &updated)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "A Blog, Revised", updated.Title)
		assert.Equal(t, "https://example.com/a2", updated.URL)
		assert.Equal(t, 7, updated.Likes)
	})

	t.Run("update with invalid payload is rejected", func(t *testing.T) {
		status, _, _ := ts.put(t, "/api/blogs/"+created.ID, map[string]any{
			"title": "No URL",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("update of unknown id is not found", func(t *testing.T) {
		status, _, _ := ts.put(t, "/api/blogs/999999", map[string]any{
			"title": "Ghost",
			"url":   "https://example.com/ghost",
		}, nil)
		assert.Equal(t, http.StatusNotFound, status)

		// not found takes precedence even when the payload is also bad
		status, _, _ = ts.put(t, "/api/blogs/999999", map[string]any{}, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		before := blogCount()

		status, _, _ := ts.delete(t, "/api/blogs/"+created.ID, nil)
		assert.Equal(t, http.StatusNoContent, status)
		assert.Equal(t, before-1, blogCount())

		status, _, _ = ts.delete(t, "/api/blogs/"+created.ID, nil)
		assert.Equal(t, http.StatusNoContent, status)
		assert.Equal(t, before-1, blogCount())

		status, _, body := ts.get(t, "/api/blogs", nil)
		assert.Equal(t, http.StatusOK, status)

		var blogs []blogResponse
		unmarshalResponse(t, body, &blogs)
		for _, b := range blogs {
			assert.NotEqual(t, created.ID, b.ID)
		}
	})

	t.Run("create tolerates unrecognized keys", func(t *testing.T) {
		before := blogCount()

		status, _, body := ts.post(t, "/api/blogs", map[string]any{
			"title": "C Blog",
			"url":   "https://example.com/c",
			"extra": 1,
			"_id":   "abc123",
		}, &token)
		assert.Equal(t, http.StatusCreated, status)

		var blog blogResponse
		unmarshalResponse(t, body, &blog)
		assert.Equal(t, "C Blog", blog.Title)
		assert.Equal(t, 0, blog.Likes)
		assert.Equal(t, before+1, blogCount())
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		status, _, body := ts.get(t, "/api/nope", nil)
		assert.Equal(t, http.StatusNotFound, status)

		var got errorResponse
		unmarshalResponse(t, body, &got)
		assert.Equal(t, "unknown endpoint", got.Error)
	})
}

func TestGetAllUsersHandlerStripsPasswordHash(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	for i := 0; i < 2; i++ {
		status, _, _ := ts.post(t, "/api/users", map[string]any{
			"username": fmt.Sprintf("user%d", i),
			"password": "sekret",
		}, nil)
		assert.Equal(t, http.StatusCreated, status)
	}

	status, _, body := ts.get(t, "/api/users", nil)
	assert.Equal(t, http.StatusOK, status)

	var users []userResponse
	unmarshalResponse(t, body, &users)
	assert.Len(t, users, 2)

	lower := strings.ToLower(string(body))
	assert.NotContains(t, lower, "password")
	assert.NotContains(t, lower, "hash")
}
