package mapper

import (
	"time"

	"github.com/google/uuid"

	userdomain "github.com/dolphin-software/users-service/internal/domains/users/domain"
)

// User represents the transport-level user payload.
type User struct {
	ID         uuid.UUID
	FullName   string
	Phone      string
	Email      string
	Password   string
	CreateDate time.Time
	UpdateDate time.Time
}

// UserView is the transport-level projection without credentials.
type UserView struct {
	ID         uuid.UUID
	FullName   string
	Phone      string
	Email      string
	CreateDate time.Time
	UpdateDate time.Time
}

// ToDomainUser converts a transport user to its domain counterpart.
// Identity and dates are carried over; the service decides whether to honour them.
func ToDomainUser(model User) *userdomain.User {
	return &userdomain.User{
		ID:         model.ID,
		FullName:   model.FullName,
		Phone:      model.Phone,
		Email:      model.Email,
		Password:   model.Password,
		CreateDate: model.CreateDate,
		UpdateDate: model.UpdateDate,
	}
}

// FromDomainUser converts a domain user into a transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:         user.ID,
		FullName:   user.FullName,
		Phone:      user.Phone,
		Email:      user.Email,
		Password:   user.Password,
		CreateDate: user.CreateDate,
		UpdateDate: user.UpdateDate,
	}
}

// FromUserDTO converts a domain DTO into its transport view.
func FromUserDTO(dto *userdomain.UserDTO) UserView {
	if dto == nil {
		return UserView{}
	}
	return UserView{
		ID:         dto.ID,
		FullName:   dto.FullName,
		Phone:      dto.Phone,
		Email:      dto.Email,
		CreateDate: dto.CreateDate,
		UpdateDate: dto.UpdateDate,
	}
}

// FromUserDTOs converts a slice of DTOs; the result is never nil.
func FromUserDTOs(dtos []userdomain.UserDTO) []UserView {
	result := make([]UserView, 0, len(dtos))
	for i := range dtos {
		result = append(result, FromUserDTO(&dtos[i]))
	}
	return result
}
