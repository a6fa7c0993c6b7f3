package sec

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillback/pointsboard/internal/config"
)

func testStore(t *testing.T) *config.Config {
	t.Helper()

	adminHash, err := HashPassword("supersecret")
	require.NoError(t, err)
	viewerHash, err := HashPassword("readonly123")
	require.NoError(t, err)

	return &config.Config{
		Users: []config.User{
			{Name: "admin", PasswordHash: string(adminHash), Role: config.RoleAdmin},
			{Name: "john", PasswordHash: string(viewerHash), Role: config.RoleViewer},
		},
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	store := testStore(t)

	tests := []struct {
		name     string
		username string
		password string
		wantRole string
		wantErr  bool
	}{
		{name: "admin with correct password", username: "admin", password: "supersecret", wantRole: config.RoleAdmin},
		{name: "viewer with correct password", username: "john", password: "readonly123", wantRole: config.RoleViewer},
		{name: "wrong password", username: "admin", password: "nope", wantErr: true},
		{name: "unknown user", username: "ghost", password: "supersecret", wantErr: true},
		{name: "empty credentials", username: "", password: "", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("GET", "/", nil)
			req.SetBasicAuth(test.username, test.password)

			id, err := Authenticate(req, store)
			if test.wantErr {
				require.ErrorIs(t, err, ErrUnauthorized)
				assert.Zero(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.username, id.Username)
			assert.Equal(t, test.wantRole, id.Role)
		})
	}
}

func TestAuthenticate_NoHeader(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/", nil)
	_, err := Authenticate(req, testStore(t))
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestIdentityContext(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	assert.Zero(t, GetIdentity(ctx))

	id := Identity{Username: "admin", Role: config.RoleAdmin}
	ctx = SetIdentity(ctx, id)
	assert.Equal(t, id, GetIdentity(ctx))
	assert.True(t, GetIdentity(ctx).IsAdmin())
}
