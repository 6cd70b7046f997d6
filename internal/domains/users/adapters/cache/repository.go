package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dolphin-software/users-service/internal/domains/users/domain"
	"github.com/dolphin-software/users-service/internal/domains/users/ports"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultNamespace = "users"
	// tombstoneTTL bounds how long a read that started before a write may take
	// and still be kept out of the cache.
	tombstoneTTL = 30 * time.Second
	tombstone    = "__invalidated__"
)

var _ ports.Repository = (*Repository)(nil)

// Repository decorates a ports.Repository with a Redis read-through cache.
// Reads of a single user and of the full list are cached. Every successful
// write replaces the affected keys with a short-lived tombstone, and misses only
// fill keys that are absent, so a read racing a write cannot restore the old value.
// A nil client disables caching.
type Repository struct {
	inner     ports.Repository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewRepository wraps inner. ttl<=0 falls back to five minutes, an empty namespace to "users".
func NewRepository(rdb *redis.Client, ttl time.Duration, inner ports.Repository, namespace string) *Repository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &Repository{inner: inner, rdb: rdb, ttl: ttl, namespace: namespace}
}

type cachedUser struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"fullName"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Password   string    `json:"password"`
	CreateDate time.Time `json:"createDate"`
	UpdateDate time.Time `json:"updateDate"`
}

func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	created, err := r.inner.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, r.listKey())
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if r.rdb == nil {
		return r.inner.GetByID(ctx, id)
	}
	key := r.userKey(id)
	var hit cachedUser
	state := r.load(ctx, key, &hit)
	if state == entryHit {
		return hit.toDomain(), nil
	}
	user, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if state == entryMissing {
		r.fill(ctx, key, fromDomain(user))
	}
	return user, nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	if r.rdb == nil {
		return r.inner.List(ctx)
	}
	key := r.listKey()
	var hit []cachedUser
	state := r.load(ctx, key, &hit)
	if state == entryHit {
		users := make([]*domain.User, 0, len(hit))
		for i := range hit {
			users = append(users, hit[i].toDomain())
		}
		return users, nil
	}
	users, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]cachedUser, 0, len(users))
	for _, u := range users {
		entries = append(entries, fromDomain(u))
	}
	if state == entryMissing {
		r.fill(ctx, key, entries)
	}
	return users, nil
}

func (r *Repository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	updated, err := r.inner.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, r.userKey(updated.ID), r.listKey())
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, r.userKey(id), r.listKey())
	return nil
}

// Forget tombstones the keys a write made by another process may have left stale.
func (r *Repository) Forget(ctx context.Context, id uuid.UUID) {
	r.invalidate(ctx, r.userKey(id), r.listKey())
}

type entryState int

const (
	entryMissing entryState = iota
	entryHit
	// entryBlocked covers tombstones and unreachable Redis; the caller reads through without filling.
	entryBlocked
)

// load decodes the entry under key into out. Undecodable entries are dropped.
func (r *Repository) load(ctx context.Context, key string, out any) entryState {
	b, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return entryMissing
	case err != nil:
		return entryBlocked
	case string(b) == tombstone:
		return entryBlocked
	}
	if err := json.Unmarshal(b, out); err != nil {
		_ = r.rdb.Del(ctx, key).Err()
		return entryMissing
	}
	return entryHit
}

// fill is best effort and never overwrites; a tombstone written since the miss wins.
func (r *Repository) fill(ctx context.Context, key string, value any) {
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = r.rdb.SetNX(ctx, key, b, r.ttl).Err()
}

func (r *Repository) invalidate(ctx context.Context, keys ...string) {
	if r.rdb == nil {
		return
	}
	for _, key := range keys {
		_ = r.rdb.Set(ctx, key, tombstone, tombstoneTTL).Err()
	}
}

func (r *Repository) userKey(id uuid.UUID) string {
	return r.namespace + ":" + id.String()
}

func (r *Repository) listKey() string {
	return r.namespace + ":all"
}

func fromDomain(u *domain.User) cachedUser {
	return cachedUser{
		ID:         u.ID,
		FullName:   u.FullName,
		Phone:      u.Phone,
		Email:      u.Email,
		Password:   u.Password,
		CreateDate: u.CreateDate,
		UpdateDate: u.UpdateDate,
	}
}

func (c cachedUser) toDomain() *domain.User {
	return &domain.User{
		ID:         c.ID,
		FullName:   c.FullName,
		Phone:      c.Phone,
		Email:      c.Email,
		Password:   c.Password,
		CreateDate: c.CreateDate,
		UpdateDate: c.UpdateDate,
	}
}
