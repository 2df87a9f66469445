package confs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	unsetEnv(t, "STORE_DRIVER", "PORT", "JWT_SECRET", "BCRYPT_COST", "MAX_UPLOAD_BYTES")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "3536", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, int64(5242880), cfg.MaxUploadBytes)
	assert.Equal(t, "", cfg.JWTSecret)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "unknown STORE_DRIVER")
}

func TestValidate_PostgresNeedsDSN(t *testing.T) {
	cfg := &Config{StoreDriver: DriverPostgres}
	assert.ErrorContains(t, cfg.Validate(), "missing required database configuration")

	cfg.DBURL = "postgres://u:p@db:5432/accounts"
	assert.NoError(t, cfg.Validate())
}

func TestPostgresDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "url gets sslmode",
			cfg:  Config{DBURL: "postgres://u:p@db:5432/accounts"},
			want: "postgres://u:p@db:5432/accounts?sslmode=require",
		},
		{
			name: "url with query",
			cfg:  Config{DBURL: "postgres://u:p@db:5432/accounts?connect_timeout=5"},
			want: "postgres://u:p@db:5432/accounts?connect_timeout=5&sslmode=require",
		},
		{
			name: "url keeps sslmode",
			cfg:  Config{DBURL: "postgres://u:p@db/accounts?sslmode=disable"},
			want: "postgres://u:p@db/accounts?sslmode=disable",
		},
		{
			name: "parts on localhost",
			cfg:  Config{DBHost: "localhost", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "accounts"},
			want: "host=localhost user=u password=p dbname=accounts port=5432 sslmode=disable TimeZone=UTC",
		},
		{
			name: "parts on remote host",
			cfg:  Config{DBHost: "db.internal", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "accounts"},
			want: "host=db.internal user=u password=p dbname=accounts port=5432 sslmode=require TimeZone=UTC",
		},
		{
			name: "incomplete parts",
			cfg:  Config{DBHost: "localhost", DBUser: "u"},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.PostgresDSN())
		})
	}
}
