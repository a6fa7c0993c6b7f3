package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUsers = `
users:
  - name: admin
    password_hash: $2a$10$abcdefghijklmnopqrstuv
    role: admin
  - name: john
    password_hash: $2a$10$abcdefghijklmnopqrstuv
    role: viewer
`

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "valid config",
			yaml:    testUsers,
			wantErr: "",
		},
		{
			name:    "no users fails validation",
			yaml:    `log_level: INFO`,
			wantErr: "config validation failed",
		},
		{
			name: "unknown role fails validation",
			yaml: `
users:
  - name: admin
    password_hash: $2a$10$abcdefghijklmnopqrstuv
    role: superuser
`,
			wantErr: `unknown role "superuser"`,
		},
		{
			name: "duplicate usernames fail validation",
			yaml: `
users:
  - name: admin
    password_hash: $2a$10$abcdefghijklmnopqrstuv
    role: admin
  - name: admin
    password_hash: $2a$10$abcdefghijklmnopqrstuv
    role: viewer
`,
			wantErr: `duplicate user "admin"`,
		},
		{
			name: "missing password hash fails validation",
			yaml: `
users:
  - name: admin
    role: admin
`,
			wantErr: "missing a password_hash",
		},
		{
			name:    "unknown driver fails validation",
			yaml:    "db_driver: mysql" + testUsers,
			wantErr: `unknown db_driver "mysql"`,
		},
		{
			name:    "postgres without dsn fails validation",
			yaml:    "db_driver: postgres" + testUsers,
			wantErr: "db_dsn is required",
		},
		{
			name:    "postgres with dsn",
			yaml:    "db_driver: postgres\ndb_dsn: postgres://localhost/points" + testUsers,
			wantErr: "",
		},
		{
			name:    "invalid yaml syntax",
			yaml:    `invalid: [yaml: content`,
			wantErr: "failed to unmarshal config file",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := writeTestConfig(t, test.yaml)
			cfg, err := Load(path)

			if test.wantErr != "" {
				require.ErrorContains(t, err, test.wantErr)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	path := writeTestConfig(t, testUsers)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost:9980", cfg.ListenAddress)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.NotEmpty(t, cfg.DBFilepath)
	assert.False(t, cfg.DBInsecureSkipTLSVerify)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	require.ErrorContains(t, err, "failed to read config file")
	assert.Nil(t, cfg)
}

func TestLookupUser(t *testing.T) {
	t.Parallel()

	path := writeTestConfig(t, testUsers)
	cfg, err := Load(path)
	require.NoError(t, err)

	user, ok := cfg.LookupUser("john")
	require.True(t, ok)
	assert.Equal(t, RoleViewer, user.Role)

	_, ok = cfg.LookupUser("nobody")
	assert.False(t, ok)
}

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)
	return path
}
