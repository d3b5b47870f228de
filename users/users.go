package users

import "time"

// User is the signed-in account as reported by the backend.
type User struct {
	ID             int       `json:"id"`
	CognitoID      string    `json:"aws_cognito_id"`
	Name           string    `json:"name"`
	Username       string    `json:"username"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	Verified       bool      `json:"verified"`
	CreatedAt      time.Time `json:"created_at"`
}
