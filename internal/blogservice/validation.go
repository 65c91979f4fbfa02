package blogservice

import (
	"github.com/kmaxwell/bloglist/internal/common"
)

// validatePayload states the schema explicitly: title and url are required
// and non-empty, author and likes are optional, likes may not be negative.
func validatePayload(v *common.Validator, title, url *string, likes *int) {
	v.Check(title != nil, "title", "must be provided")
	if title != nil {
		v.Check(*title != "", "title", "must not be empty")
	}

	v.Check(url != nil, "url", "must be provided")
	if url != nil {
		v.Check(*url != "", "url", "must not be empty")
	}

	if likes != nil {
		v.Check(*likes >= 0, "likes", "must not be negative")
	}
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
