package models

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	DefaultAvatar = "default.jpg"
)

// User is an account record stored in PostgreSQL. Accounts are never hard-deleted;
// deactivation flips Active to false.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"` // unique across active and inactive accounts
	Username    string    `json:"username" gorm:"not null"`
	FirstName   string    `json:"firstName" gorm:"not null"`
	LastName    string    `json:"lastName" gorm:"not null"`
	Password    string    `json:"-" gorm:"not null"`
	Avatar      string    `json:"avatar" gorm:"default:default.jpg"`
	Role        string    `json:"role" gorm:"type:varchar(10);default:user"`
	Active      bool      `json:"active" gorm:"not null;default:true;index"`
	FirebaseUID *string   `json:"-" gorm:"uniqueIndex"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IDString is the canonical string form of the user id, the form stored on posts.
func (u *User) IDString() string {
	return strconv.FormatUint(uint64(u.ID), 10)
}

// UserCompact is the author summary embedded in post responses.
type UserCompact struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Avatar    string `json:"avatar"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}
}

type CreateLocalUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=2,max=50"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Password  string `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateMeRequest is the profile update body. Password is bound only so the
// handler can refuse password changes on this route.
type UpdateMeRequest struct {
	Username  string `json:"username,omitempty" form:"username" validate:"omitempty,min=2,max=50"`
	Email     string `json:"email,omitempty" form:"email" validate:"omitempty,email"`
	FirstName string `json:"firstName,omitempty" form:"firstName" validate:"omitempty,max=50"`
	LastName  string `json:"lastName,omitempty" form:"lastName" validate:"omitempty,max=50"`
	Password  string `json:"password,omitempty" form:"password"`
	Avatar    string `json:"-" form:"-"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
