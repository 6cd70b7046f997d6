package migrations

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRun_CreatesUsersTable(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Run(db))
	require.True(t, db.Migrator().HasTable("users"))
	for _, column := range []string{"user_id", "full_name", "phone", "email", "password", "create_date", "update_date"} {
		require.True(t, db.Migrator().HasColumn(&userRecord{}, column), column)
	}
	require.True(t, db.Migrator().HasIndex(&userRecord{}, emailIndex))

	require.NoError(t, Run(db), "migrations must be re-runnable")
}

func TestRun_EmailUniqueIgnoringCase(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Run(db))

	insert := "INSERT INTO users (user_id, full_name, phone, email, password, create_date, update_date) VALUES (?, 'Alice', '111', ?, 'p1', '2024-04-03', '2024-04-03')"
	require.NoError(t, db.Exec(insert, "id-1", "a@x.com").Error)
	require.Error(t, db.Exec(insert, "id-2", "A@X.com").Error)
}

func TestRun_ReplacesCaseSensitiveEmailIndex(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Run(db))
	require.NoError(t, db.Exec("CREATE UNIQUE INDEX uk_users_email ON users (email)").Error)

	require.NoError(t, Run(db))
	require.False(t, db.Migrator().HasIndex(&userRecord{}, legacyEmailIndex))
	require.True(t, db.Migrator().HasIndex(&userRecord{}, emailIndex))
}

func TestRun_NilDB(t *testing.T) {
	require.NoError(t, Run(nil))
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, _, err := Open("  ")
	require.Error(t, err)
}
