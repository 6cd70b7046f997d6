package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dolphin-software/users-service/internal/domains/users/domain"
	"github.com/dolphin-software/users-service/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists users in PostgreSQL using GORM. The schema is owned by
// platform/migrations; the DB should be opened with TranslateError so unique
// violations map to ports.ErrDuplicateEmail.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type userRecord struct {
	ID         string    `gorm:"primaryKey;column:user_id;type:varchar(36)"`
	FullName   string    `gorm:"column:full_name;size:60"`
	Phone      string    `gorm:"column:phone;size:15"`
	Email      string    `gorm:"column:email;size:60"`
	Password   string    `gorm:"column:password"`
	CreateDate time.Time `gorm:"column:create_date;type:date"`
	UpdateDate time.Time `gorm:"column:update_date;type:date"`
}

func (userRecord) TableName() string { return "users" }

// Create inserts a new user under a freshly generated id.
func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	record := toRecord(user)
	record.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain()
}

// GetByID fetches a user by id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "user_id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain()
}

// List returns all users ordered by creation date.
func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []userRecord
	if err := r.db.WithContext(ctx).Order("create_date, user_id").Find(&records).Error; err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(records))
	for i := range records {
		user, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// Update replaces every column of the stored row.
func (r *Repository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	record := toRecord(user)
	result := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("user_id = ?", record.ID).
		Select("full_name", "phone", "email", "password", "create_date", "update_date").
		Updates(&record)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, user.ID)
}

// Delete removes a user by id. Missing rows are ignored.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("user_id = ?", id.String()).Delete(&userRecord{}).Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrDuplicateEmail
	}
	return err
}

func toRecord(user *domain.User) userRecord {
	return userRecord{
		ID:         user.ID.String(),
		FullName:   user.FullName,
		Phone:      user.Phone,
		Email:      user.Email,
		Password:   user.Password,
		CreateDate: domain.DateOf(user.CreateDate),
		UpdateDate: domain.DateOf(user.UpdateDate),
	}
}

func (r userRecord) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:         id,
		FullName:   r.FullName,
		Phone:      r.Phone,
		Email:      r.Email,
		Password:   r.Password,
		CreateDate: domain.DateOf(r.CreateDate),
		UpdateDate: domain.DateOf(r.UpdateDate),
	}, nil
}
