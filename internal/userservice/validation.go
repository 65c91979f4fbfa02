package userservice

import (
	"github.com/kmaxwell/bloglist/internal/common"
)

func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(v.CheckMinLength(username, MinUsernameLength), "username", "must be at least 3 characters long")
}

// validatePassword mirrors the username length floor. Uniqueness is enforced
// by the database, not here.
func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(v.CheckMinLength(password, MinPasswordLength), "password", "must be at least 3 characters long")
}
