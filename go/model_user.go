package usersserver

import (
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime/types"
)

// User is the request body of create and update, and the response body of create.
type User struct {
	Id         *uuid.UUID  `json:"id,omitempty"`
	FullName   string      `json:"fullName"`
	Phone      string      `json:"phone"`
	Email      string      `json:"email"`
	Password   string      `json:"password"`
	CreateDate *types.Date `json:"createDate,omitempty"`
	UpdateDate *types.Date `json:"updateDate,omitempty"`
}

// UserDto is the credential-free user returned by reads.
type UserDto struct {
	Id         uuid.UUID  `json:"id"`
	FullName   string     `json:"fullName"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	CreateDate types.Date `json:"createDate"`
	UpdateDate types.Date `json:"updateDate"`
}

// UserList wraps the list response.
type UserList struct {
	Users []UserDto `json:"users"`
}
