package model

// User is a local operator account. Authentication beyond a credential
// check producing a session is out of scope for this service.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

// DefaultUsers returns the single built-in operator account.
func DefaultUsers() []*User {
	return []*User{
		{ID: "1", Name: "Administrator", Username: "admin", Password: "123"},
	}
}
