package model

import "time"

type User struct {
	ID           int64  `json:"Id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	PasswordHash string `json:"-"`
}

type SignUpReq struct {
	FirstName string `json:"firstName" form:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" form:"lastName" binding:"max=100"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Password  string `json:"password" form:"password" binding:"required,min=8"`
}

type LoginReq struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UserRes struct {
	ID           int64  `json:"Id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

type LoginUserRes struct {
	SessionID            string    `json:"session_id"`
	AccessToken          string    `json:"access_token"`
	AccessTokenExpiresAt time.Time `json:"access_token_expires_at"`
	User                 UserRes   `json:"user"`
}
