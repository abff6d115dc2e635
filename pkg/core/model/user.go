package model

// User is the identity which the account service resolves for a
// bearer credential.
type User struct {
	ID       string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AccountPatch carries a partial account update. A nil Password keeps
// the current password; the other fields always overwrite.
type AccountPatch struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password *string `json:"password,omitempty"`
}
