package sec

import (
	"context"
	"errors"
	"net/http"

	"github.com/quillback/pointsboard/internal/config"
)

// ErrUnauthorized is returned when Basic credentials are missing or do not
// match a configured user.
var ErrUnauthorized = errors.New("invalid username or password")

// Identity is the authenticated caller, resolved fresh on every request. It
// is never persisted or cached across requests.
type Identity struct {
	Username string
	Role     string
}

// IsAdmin reports whether the identity holds the admin role.
func (id Identity) IsAdmin() bool { return id.Role == config.RoleAdmin }

// Store is the credential lookup the authenticator depends on. It is a fixed
// table with no mutation path; *config.Config satisfies it.
type Store interface {
	LookupUser(name string) (config.User, bool)
}

// Authenticate resolves the logged in user from req. If the credentials are
// missing or invalid, [ErrUnauthorized] is returned.
func Authenticate(req *http.Request, store Store) (Identity, error) {
	username, password, ok := req.BasicAuth()
	if !ok {
		return Identity{}, ErrUnauthorized
	}
	user, ok := store.LookupUser(username)
	if !ok {
		// Burn a comparison anyway so a missing user costs the same as a
		// wrong password.
		_ = ComparePassword(password, dummyHash)
		return Identity{}, ErrUnauthorized
	}
	if err := ComparePassword(password, []byte(user.PasswordHash)); err != nil {
		return Identity{}, ErrUnauthorized
	}
	return Identity{Username: user.Name, Role: user.Role}, nil
}

// dummyHash is a well-formed bcrypt hash of a throwaway value, compared
// against when the username is unknown.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type identityKey struct{}

// GetIdentity returns the identity of the authenticated caller. A zero-value
// Identity is returned if the context has no authenticated caller (which
// should only happen if middleware is misconfigured).
func GetIdentity(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityKey{}).(Identity); ok {
		return id
	}
	return Identity{}
}

// SetIdentity stores the identity of an authenticated caller. The auth
// middleware injects this automatically; this function is provided as a
// convenience for testing.
func SetIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}
