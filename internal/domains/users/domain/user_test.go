package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDateOf_TruncatesToMidnightUTC(t *testing.T) {
	in := time.Date(2024, time.March, 9, 23, 59, 12, 99, time.FixedZone("CET", 3600))
	require.Equal(t, time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC), DateOf(in))
}

func TestMarkCreated_ResetsIdentityAndStampsDates(t *testing.T) {
	now := time.Date(2024, time.May, 1, 15, 4, 5, 0, time.UTC)
	user := &User{ID: uuid.New(), CreateDate: now.AddDate(-1, 0, 0)}

	user.MarkCreated(now)

	require.Equal(t, uuid.Nil, user.ID)
	require.Equal(t, DateOf(now), user.CreateDate)
	require.Equal(t, user.CreateDate, user.UpdateDate)
}

func TestMergeFrom_KeepsContactFields(t *testing.T) {
	created := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	existing := &User{
		ID:         uuid.New(),
		FullName:   "Alice",
		Phone:      "111",
		Email:      "a@x.com",
		Password:   "old",
		CreateDate: created,
		UpdateDate: created,
	}
	payload := &User{FullName: "Bob", Phone: "222", Email: "b@x.com", Password: "new"}
	today := time.Date(2024, time.June, 7, 8, 0, 0, 0, time.UTC)

	payload.MergeFrom(existing, today)

	require.Equal(t, existing.ID, payload.ID)
	require.Equal(t, "Alice", payload.FullName)
	require.Equal(t, "111", payload.Phone)
	require.Equal(t, "a@x.com", payload.Email)
	require.Equal(t, "new", payload.Password)
	require.Equal(t, created, payload.CreateDate)
	require.Equal(t, DateOf(today), payload.UpdateDate)
}

func TestMergeFrom_UpdateDateNeverPrecedesCreateDate(t *testing.T) {
	created := time.Date(2030, time.January, 2, 0, 0, 0, 0, time.UTC)
	existing := &User{ID: uuid.New(), CreateDate: created, UpdateDate: created}
	payload := &User{Password: "pw"}

	payload.MergeFrom(existing, created.AddDate(0, 0, -3))

	require.Equal(t, created, payload.UpdateDate)
}

func TestClone_Nil(t *testing.T) {
	var user *User
	require.Nil(t, user.Clone())
}
