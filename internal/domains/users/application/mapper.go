package application

import "github.com/dolphin-software/users-service/internal/domains/users/domain"

// ToUserDTO projects a user onto its public view, dropping the password.
func ToUserDTO(user *domain.User) domain.UserDTO {
	if user == nil {
		return domain.UserDTO{}
	}
	return domain.UserDTO{
		ID:         user.ID,
		FullName:   user.FullName,
		Phone:      user.Phone,
		Email:      user.Email,
		CreateDate: user.CreateDate,
		UpdateDate: user.UpdateDate,
	}
}

func ToUserDTOs(users []*domain.User) []domain.UserDTO {
	out := make([]domain.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserDTO(u))
	}
	return out
}
