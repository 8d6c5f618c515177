package jwt

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

type Service interface {
	// GenerateAccessToken mints a signed access token. Tokens are normally issued by
	// the identity service; this is used by the dev token tool and tests.
	GenerateAccessToken(userID string, employeeID *string, role auth.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(userID string, employeeID *string, role auth.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":     userID,
		"employee_id": returnValueOrNil(employeeID),
		"role":        string(role),
		"type":        tokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// AuthContextFromClaims builds the caller identity from verified access token claims.
func AuthContextFromClaims(claims map[string]interface{}) (auth.AuthContext, error) {
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != tokenTypeAccess {
		return auth.AuthContext{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.AuthContext{}, auth.ErrInvalidToken
	}

	roleStr, _ := claims["role"].(string)
	role := auth.Role(roleStr)
	if !role.Valid() {
		return auth.AuthContext{}, auth.ErrInvalidToken
	}

	employeeID, _ := claims["employee_id"].(string)

	return auth.AuthContext{
		UserID:     userID,
		EmployeeID: employeeID,
		Role:       role,
	}, nil
}

func returnValueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
