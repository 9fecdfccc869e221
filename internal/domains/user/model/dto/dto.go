package dto

import (
	"innstay/internal/domains/user/model"
	gDto "innstay/shared/dto"
)

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
	Phone     string  `json:"phone"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User, profile model.Profile) {
	r.ID = user.ID
	r.Email = user.Email
	r.FullName = user.FullName
	r.Role = profile.Role
	r.Phone = profile.Phone
	r.LastLogin = user.LastLogin
	r.Active = user.Active
	r.Metadata.FromModel(user.Metadata)
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone,omitempty"     validate:"omitempty,e164"`
}

type UpdateFullNameRequest struct {
	FullName string `db:"full_name" json:"full_name"`
}

type UpdatePhoneRequest struct {
	Phone string `db:"phone" json:"phone"`
}
