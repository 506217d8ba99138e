package utils

import (
	"time"

	"github.com/jtompuri/writing-contest-web-app-sub000/config"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by the session token. Csrf is the anti-forgery token minted
// at login; mutating requests must echo it in the X-Csrf-Token header.
type Claims struct {
	UserID uint   `json:"user_id"`
	Super  bool   `json:"super"`
	Csrf   string `json:"csrf"`
	jwt.RegisteredClaims
}

// GenerateToken signs a session token for the user. The anti-forgery token
// is generated fresh on every login.
func GenerateToken(user *models.User, rememberMe bool) (string, string, error) {
	csrf, err := GenerateKey(16)
	if err != nil {
		return "", "", err
	}

	lifetime := 24 * time.Hour
	if rememberMe {
		lifetime = 30 * 24 * time.Hour
	}

	claims := Claims{
		UserID: user.ID,
		Super:  user.Super,
		Csrf:   csrf,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.JWTSecret))
	return signed, csrf, err
}

// ParseToken validates a session token and returns its claims
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
