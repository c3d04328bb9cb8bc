package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"rental-service/internal/model"
	"rental-service/pkg/config"
	"rental-service/pkg/database"
	"rental-service/pkg/jwtutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "rental-service", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"serve", "migrate", "token"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestTokenCommandRequiresUserID(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"token"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--user-id")
}

func TestMigrateThenToken(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	dbPath := filepath.Join(dir, "data", "rental.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", dbPath)
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("JWT_SIGNING_KEY", "cli-test-key")
	t.Setenv("TZ", "UTC")

	migrate := NewRootCommand()
	migrate.SetArgs([]string{"migrate"})
	require.NoError(t, migrate.Execute())

	db, err := database.OpenSQLite(dbPath, logger.Silent)
	require.NoError(t, err)
	user := model.User{Username: "operator", Email: "operator@example.com", PasswordHash: "x", Role: model.RoleOwner}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, database.Close(db))

	var out bytes.Buffer
	token := NewRootCommand()
	token.SetOut(&out)
	token.SetArgs([]string{"token", "--user-id", "1"})
	require.NoError(t, token.Execute())

	jwt := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "cli-test-key", ExpirationHours: 24})
	claims, err := jwt.ValidateToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "operator", claims.Username)
	assert.Equal(t, "owner", claims.Role)
}
