package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the fixed set of account roles. Access decisions go through the
// capability methods below, never through raw string comparison.
type Role string

const (
	RoleStudent     Role = "STUDENT"
	RoleFaculty     Role = "FACULTY"
	RoleStaff       Role = "STAFF"
	RoleDeptOfficer Role = "DEPT_OFFICER"
	RoleAdmin       Role = "ADMIN"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleFaculty, RoleStaff, RoleDeptOfficer, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// CanSubmit reports whether the role may file complaints.
func (r Role) CanSubmit() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleStaff:
		return true
	default:
		return false
	}
}

// CanTriage reports whether the role may work a department queue and move
// complaints through the status lifecycle.
func (r Role) CanTriage() bool {
	switch r {
	case RoleDeptOfficer, RoleAdmin:
		return true
	default:
		return false
	}
}

// OfficerEligible reports whether a user with this role may be assigned to
// a complaint as the responsible officer.
func (r Role) OfficerEligible() bool {
	switch r {
	case RoleFaculty, RoleStaff, RoleDeptOfficer:
		return true
	default:
		return false
	}
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// OfficerRoles lists the roles eligible for officer assignment, for use in
// repository queries.
func OfficerRoles() []Role {
	return []Role{RoleFaculty, RoleStaff, RoleDeptOfficer}
}

type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (d *Department) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

type User struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Email             string      `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash      string      `gorm:"size:255;not null" json:"-"`
	Name              string      `gorm:"size:100;not null" json:"name"`
	Role              Role        `gorm:"size:20;not null;default:STUDENT" json:"role"`
	DepartmentID      *uuid.UUID  `gorm:"type:uuid" json:"department_id,omitempty"`
	Department        *Department `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"department,omitempty"`
	EmailVerifiedAt   *time.Time  `json:"email_verified_at,omitempty"`
	VerificationToken *string     `gorm:"size:64;index" json:"-"`
	CreatedAt         time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Verified reports whether the account completed email verification.
func (u *User) Verified() bool {
	return u.EmailVerifiedAt != nil
}
