package blogservice

// Stats summarizes a blog collection.
type Stats struct {
	Count      int   `json:"count"`
	TotalLikes int   `json:"totalLikes"`
	Favorite   *Blog `json:"favorite,omitempty"`
}

// TotalLikes returns the sum of likes over the collection. An empty
// collection sums to 0.
func TotalLikes(blogs []Blog) int {
	total := 0
	for _, blog := range blogs {
		total += blog.Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes, or nil for an empty
// collection. Ties are broken last-seen-wins: a later blog with equal likes
// replaces an earlier one.
func FavoriteBlog(blogs []Blog) *Blog {
	var favorite *Blog
	for i := range blogs {
		if favorite == nil || blogs[i].Likes >= favorite.Likes {
			favorite = &blogs[i]
		}
	}
	return favorite
}
