package crypto

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/codeclimb-2025.net/internal/config"
	"gitlab.com/codeclimb-2025.net/internal/core/ports/primary"
)

var (
	ErrInvalidToken = fmt.Errorf("invalid token")
)

var _ primary.IdentityVerifier = (*JWTVerifier)(nil)

// JWTVerifier verifies HMAC-signed bearer tokens issued by the external
// identity provider and extracts the stable user identifier from the sub
// claim. Token issuance is not done here.
type JWTVerifier struct {
	HMACSecretKey string
}

func NewJWTVerifier(jwtConfig *config.JwtConfig) *JWTVerifier {
	return &JWTVerifier{
		HMACSecretKey: jwtConfig.Secret,
	}
}

// VerifyToken validates the token signature and returns the subject claim.
func (j *JWTVerifier) VerifyToken(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(j.HMACSecretKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("%w: missing subject claim", ErrInvalidToken)
	}

	return subject, nil
}
