package dto

import (
	"github.com/gikomplain/backend/internal/model"
	"github.com/google/uuid"
)

type RegisterInput struct {
	Email        string  `json:"email" binding:"required,email,uni_email"`
	Password     string  `json:"password" binding:"required,min=6"`
	Name         string  `json:"name" binding:"required,min=2"`
	Role         *string `json:"role" binding:"omitempty,oneof=STUDENT FACULTY STAFF DEPT_OFFICER ADMIN"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UserResponse is the sanitized user projection returned by auth endpoints.
// It never carries the password hash or the verification token.
type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         model.Role `json:"role"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
	}
}

// LoginResult carries the signed session token to the handler, which turns
// it into a cookie. The token itself never appears in the response body.
type LoginResult struct {
	Token string       `json:"-"`
	User  UserResponse `json:"user"`
}
