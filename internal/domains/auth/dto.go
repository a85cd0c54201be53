package auth

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// RegisterReq - POST /auth/register
type RegisterReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r RegisterReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

// LoginReq - POST /auth/login
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// RefreshReq - POST /auth/refresh
type RefreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

// UserResp is the public view of a user. Password hash and refresh token are
// deliberately absent.
type UserResp struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  *string   `json:"name"`
}

// AuthResp - token pair plus the public user view.
type AuthResp struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         UserResp `json:"user"`
}

// ValidateResp - GET /auth/validate
type ValidateResp struct {
	Valid bool `json:"valid"`
}

func UserToResp(u *User) UserResp {
	return UserResp{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}
