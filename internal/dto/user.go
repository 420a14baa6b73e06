package dto

import (
	"time"

	"github.com/builddost/builddost-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          string    `json:"id"`
	Email       *string   `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl"`
	Bio         string    `json:"bio"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Website     string    `json:"website"`
	HasPassword bool      `json:"hasPassword"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserResponse is the success envelope for a single user
type UserResponse struct {
	Success bool    `json:"success"`
	User    UserDTO `json:"user"`
}

// ToUserDTO converts a user to DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		Bio:         user.Bio,
		Company:     user.Company,
		Location:    user.Location,
		Website:     user.Website,
		HasPassword: user.HasPassword(),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func NewUserResponse(user models.User) UserResponse {
	return UserResponse{Success: true, User: ToUserDTO(user)}
}
