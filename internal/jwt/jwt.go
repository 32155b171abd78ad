package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"careteam/internal/platform/middleware"
	dErrors "careteam/pkg/domain-errors"
)

// Claims are the access-token claims this service accepts. The subject is the
// operator identity recorded as changedBy on audit entries.
type Claims struct {
	jwtlib.RegisteredClaims
}

// Service validates bearer tokens issued by the surrounding platform. Token
// issuance is not our concern; we only need the actor identity.
type Service struct {
	signingKey []byte
	issuer     string
}

func NewService(signingKey string, issuer string) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
	}
}

// GenerateToken mints a short-lived HS256 token. Used by tests and local
// tooling; production tokens come from the platform's identity provider.
func (s *Service) GenerateToken(actorID string, expiresIn time.Duration) (string, error) {
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   actorID,
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(s.signingKey)
}

// ValidateToken implements middleware.TokenValidator.
func (s *Service) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	parsed, err := jwtlib.ParseWithClaims(tokenString, &Claims{}, func(token *jwtlib.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, jwtlib.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if claims.Subject == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token has no subject")
	}

	return &middleware.TokenClaims{ActorID: claims.Subject}, nil
}
