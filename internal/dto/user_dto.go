package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/notablehq/notable-backend/internal/models"
)

type SignupRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
}

// UpdateMeRequest is the self-service profile update. Account flags are
// deliberately absent; only an admin can touch those.
type UpdateMeRequest struct {
	Email     *string `json:"email"`
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Phone     *string `json:"phone"`
}

// AdminUpdateUserRequest is the superuser-only update; nil fields are
// left unchanged.
type AdminUpdateUserRequest struct {
	Email       *string `json:"email"`
	FullName    *string `json:"full_name"`
	AvatarURL   *string `json:"avatar_url"`
	Phone       *string `json:"phone"`
	Password    *string `json:"password"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser *bool   `json:"is_superuser"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FullName    *string   `json:"full_name"`
	AvatarURL   *string   `json:"avatar_url"`
	Phone       *string   `json:"phone"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UsersResponse struct {
	Data  []UserResponse `json:"data"`
	Count int64          `json:"count"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		AvatarURL:   u.AvatarURL,
		Phone:       u.Phone,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
