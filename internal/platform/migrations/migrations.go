package migrations

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// legacyEmailIndex was case-sensitive and is replaced by emailIndex.
const (
	legacyEmailIndex = "uk_users_email"
	emailIndex       = "uk_users_email_lower"
)

// Run applies the users schema. Emails are unique ignoring case.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(&userRecord{}); err != nil {
		return err
	}
	if db.Migrator().HasIndex(&userRecord{}, legacyEmailIndex) {
		return db.Migrator().DropIndex(&userRecord{}, legacyEmailIndex)
	}
	return nil
}

// Open connects through database/sql with the lib/pq driver, for one-shot schema jobs
// that should not hold a pgx pool.
func Open(dsn string) (*gorm.DB, func() error, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, nil, fmt.Errorf("postgres DSN is empty")
	}
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, err
	}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return db, sqlDB.Close, nil
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID         string    `gorm:"primaryKey;column:user_id;type:varchar(36)"`
	FullName   string    `gorm:"column:full_name;size:60;not null"`
	Phone      string    `gorm:"column:phone;size:15;not null"`
	Email      string    `gorm:"column:email;size:60;not null;uniqueIndex:uk_users_email_lower,expression:lower(email)"`
	Password   string    `gorm:"column:password;not null"`
	CreateDate time.Time `gorm:"column:create_date;type:date;not null"`
	UpdateDate time.Time `gorm:"column:update_date;type:date;not null"`
}

func (userRecord) TableName() string { return "users" }
