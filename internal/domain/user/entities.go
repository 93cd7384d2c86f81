package user

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleUnchanged      = errors.New("user already has this role")
	ErrUnknownRole        = errors.New("unknown role")
)

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleVerifier   Role = "VERIFIER"
	RoleUser       Role = "USER"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleAdmin, RoleVerifier, RoleUser:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Capability names an operation class a role may perform. Route guards
// check capabilities here instead of comparing role strings in handlers.
type Capability string

const (
	CapSubmitApplications  Capability = "applications:submit"
	CapVerifyApplications  Capability = "applications:verify"
	CapApproveApplications Capability = "applications:approve"
	CapFundLoans           Capability = "loans:fund"
	CapRepayLoans          Capability = "loans:repay"
	CapManageRoles         Capability = "users:manage-roles"
)

var capabilities = map[Role]map[Capability]bool{
	RoleUser: {
		CapSubmitApplications: true,
		CapRepayLoans:         true,
	},
	RoleVerifier: {
		CapVerifyApplications: true,
	},
	RoleAdmin: {
		CapApproveApplications: true,
		CapFundLoans:           true,
	},
	// RoleSuperAdmin is a wildcard, see Can.
}

// Can reports whether the role may perform the capability.
// SUPER_ADMIN passes every check.
func (r Role) Can(c Capability) bool {
	if r == RoleSuperAdmin {
		return true
	}
	return capabilities[r][c]
}

type User struct {
	ID     uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID string `gorm:"column:user_id;type:char(32);not null;uniqueIndex:ux_users_user_id" json:"id"`
	Name   string `gorm:"column:name;size:255" json:"name"`
	Email  string `gorm:"column:email;size:255;not null;uniqueIndex:ux_users_email" json:"email"`
	// bcrypt hash; never serialized
	Password  string    `gorm:"column:password;size:255;not null" json:"-"`
	Phone     string    `gorm:"column:phone;size:32" json:"phone"`
	Role      Role      `gorm:"column:role;size:16;not null;default:'USER'" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (User) TableName() string { return "users" }
