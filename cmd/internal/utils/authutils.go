package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"notehub/cmd/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var jwtSecret []byte

func InitJWT(secret string) error {
	if strings.TrimSpace(secret) == "" {
		return errors.New("JWT_SECRET is empty")
	}
	jwtSecret = []byte(secret)
	return nil
}

type TokenData struct {
	UserID int64
	Email  string
	JTI    string
	Exp    int64 // unix seconds
}

// IssueToken signs a fresh HS256 token for the user. The jti makes each
// token individually revocable at logout.
func IssueToken(user *entity.User, ttl time.Duration) (string, error) {
	if len(jwtSecret) == 0 {
		return "", errors.New("JWT not initialized")
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateToken parses AND validates the signature locally.
// It returns the data if the token is authentic and unexpired.
func ValidateToken(tokenString string) (*TokenData, error) {
	if len(jwtSecret) == 0 {
		return nil, errors.New("JWT not initialized")
	}

	clean := sanitizeToken(tokenString)
	token, err := jwt.Parse(clean, func(t *jwt.Token) (any, error) {
		return jwtSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims format")
	}

	userId, err := strconv.ParseInt(getValue(claims, "sub"), 10, 64)
	if err != nil {
		return nil, errors.New("invalid subject claim")
	}

	return &TokenData{
		UserID: userId,
		Email:  getValue(claims, "email"),
		JTI:    getValue(claims, "jti"),
		Exp:    getInt64(claims, "exp"),
	}, nil
}

func ParseTokenDataCtx(ctx echo.Context) (*TokenData, error) {
	token := ctx.Request().Header.Get(echo.HeaderAuthorization)
	return ValidateToken(token)
}

func sanitizeToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}

func getValue(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

func getInt64(claims jwt.MapClaims, key string) int64 {
	val, ok := claims[key]
	if !ok {
		return 0
	}
	if f, ok := val.(float64); ok {
		return int64(f)
	}
	if i, ok := val.(int64); ok {
		return i
	}
	return 0
}
