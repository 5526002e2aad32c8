package api

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/limbo/tempo/pkg/entity"
)

type JWTServiceI interface {
	GenerateToken(user *entity.User) (string, error)
	ParseToken(tokenString string) (*JWTClaims, error)
}

// Role travels in the claims so guest sessions, which are never
// persisted, can be authorized without a store lookup.
type JWTClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
