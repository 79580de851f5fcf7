package models

// User is a local login account. Authentication is a toy credential
// check against the local store, nothing more.
type User struct {
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
