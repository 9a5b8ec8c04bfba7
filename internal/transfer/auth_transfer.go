package transfer

import "github.com/golang-jwt/jwt/v5"

type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// RequestMeta carries caller context from the HTTP boundary into services that
// write audit entries. Explicit, never read from ambient globals.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}
