package authenticator

import "time"

// User is the identity carried by an access token.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type TokenEngine interface {
	Generate(expiration time.Duration, obj any) (string, error)
	Verify(token string, obj any) error
}
