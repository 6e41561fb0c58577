package models

import (
	"errors"
	"time"

	goval "github.com/go-passwd/validator"
	"github.com/google/uuid"
)

// User is an account allowed to sign in. Non-admin users with a ZoneID or
// UnitID only read records inside that scope.
type User struct {
	Model
	Email          string     `json:"email" gorm:"uniqueIndex;not null"`
	Name           string     `json:"name"`
	HashedPassword string     `json:"-"`
	RoleID         uuid.UUID  `json:"roleId" gorm:"type:uuid"`
	Role           Role       `json:"role" gorm:"foreignKey:RoleID"`
	ZoneID         *uuid.UUID `json:"zoneId,omitempty" gorm:"type:uuid"`
	UnitID         *uuid.UUID `json:"unitId,omitempty" gorm:"type:uuid"`
	IsActive       bool       `json:"isActive" gorm:"not null;default:true"`
}

func (u *User) IsAdmin() bool {
	return u.Role.Name == RoleAdmin
}

// Scope returns the read scope of u. Admins are unrestricted.
func (u *User) Scope() Scope {
	if u.IsAdmin() {
		return Scope{}
	}
	return Scope{ZoneID: u.ZoneID, UnitID: u.UnitID}
}

type Blacklist struct {
	Model
	Token string `json:"-" gorm:"uniqueIndex;not null"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" conform:"trim,lower"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        *User     `json:"user"`
}

type UserRequest struct {
	Email    string `json:"email" binding:"required,email" conform:"trim,lower"`
	Name     string `json:"name" binding:"required" conform:"trim"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user" conform:"trim,lower"`
	ZoneID   string `json:"zoneId" binding:"omitempty,uuid" conform:"trim"`
	UnitID   string `json:"unitId" binding:"omitempty,uuid" conform:"trim"`
}

type UpdateUserRequest struct {
	Name     string  `json:"name" conform:"trim"`
	Password string  `json:"password"`
	Role     string  `json:"role" binding:"omitempty,oneof=admin user" conform:"trim,lower"`
	// ZoneID and UnitID are left alone when absent. An empty string clears
	// the scope.
	ZoneID   *string `json:"zoneId" binding:"omitempty,uuid"`
	UnitID   *string `json:"unitId" binding:"omitempty,uuid"`
	IsActive *bool   `json:"isActive"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(8, errors.New("password can't be less than 8 characters")),
		goval.MaxLength(64, errors.New("password can't be more than 64 characters")))
	return passwordValidator.Validate(password)
}
