package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the resolved caller identity carried by an access token.
// Services receive the id and role set as plain arguments and never parse
// tokens themselves.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Roles    []Role `json:"roles"`
}
