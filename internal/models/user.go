// ABOUTME: User represents a user account from the catalog API
// ABOUTME: Used for the user directory and login-frequency recommendations
package models

// User represents a user account
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Image     string `json:"image"`
}

// FullName returns the user's display name
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
