package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolphin-software/users-service/internal/domains/users/domain"
)

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(fakeMessages{})

	tests := []struct {
		name   string
		user   domain.User
		fields map[string]string
	}{
		{
			name: "valid",
			user: domain.User{FullName: "Alice", Phone: "111", Email: "a@x.com", Password: "p1"},
		},
		{
			name: "all blank",
			user: domain.User{FullName: " ", Phone: "", Email: "\t", Password: ""},
			fields: map[string]string{
				domain.FieldFullName: "en:NotBlank.user.fullName",
				domain.FieldPhone:    "en:NotBlank.user.phone",
				domain.FieldEmail:    "en:NotBlank.user.email",
				domain.FieldPassword: "en:NotBlank.user.password",
			},
		},
		{
			name: "too long",
			user: domain.User{
				FullName: strings.Repeat("a", domain.MaxFullNameLength+1),
				Phone:    strings.Repeat("1", domain.MaxPhoneLength+1),
				Email:    strings.Repeat("e", domain.MaxEmailLength) + "@x.com",
				Password: "p1",
			},
			fields: map[string]string{
				domain.FieldFullName: "en:Size.user.fullName 60",
				domain.FieldPhone:    "en:Size.user.phone 15",
				domain.FieldEmail:    "en:Size.user.email 60",
			},
		},
		{
			name: "limits count runes",
			user: domain.User{FullName: strings.Repeat("ñ", domain.MaxFullNameLength), Phone: "111", Email: "a@x.com", Password: "p1"},
		},
		{
			name:   "malformed email",
			user:   domain.User{FullName: "Alice", Phone: "111", Email: "alice.example.com", Password: "p1"},
			fields: map[string]string{domain.FieldEmail: "en:Email.user.email"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.user
			err := v.Validate(context.Background(), &user)
			if tt.fields == nil {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.fields, verr.Fields)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestValidator_NilUser(t *testing.T) {
	require.Error(t, NewValidator(fakeMessages{}).Validate(context.Background(), nil))
}

func TestValidationError_MessageIsStable(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"phone": "b", "email": "a"}}
	require.Equal(t, "invalid user input: email: a; phone: b", err.Error())
}
