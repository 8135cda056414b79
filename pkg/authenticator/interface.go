package authenticator

import "time"

// TokenEngine signs and verifies an arbitrary payload object embedded into
// JWT claims. The payload is carried under the "obj" claim.
type TokenEngine interface {
	Generate(expiration time.Duration, obj any) (string, error)
	Verify(token string, obj any) error
}
