package models

// User is an account known to the local store.
// Usernames are unique by convention only; the store does not enforce it.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	IsAdmin  bool   `json:"is_admin"`
}

// NewUser returns a non-admin user that has not been assigned an identity yet.
func NewUser(username, password string) User {
	return User{
		Username: username,
		Password: password,
	}
}

// Equal reports whether all fields of u and o match.
func (u User) Equal(o User) bool {
	return u == o
}
