package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTService JWT Token 服务
type JWTService struct {
	secret    []byte
	expiresIn time.Duration
}

// NewJWTService 创建新的 JWT 服务
func NewJWTService(secret string, expiresIn time.Duration) (*JWTService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("JWT secret must be at least 32 characters long, got %d", len(secret))
	}
	if expiresIn <= 0 {
		expiresIn = 24 * time.Hour
	}

	return &JWTService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
	}, nil
}

// GenerateAccessToken 为登录用户生成访问令牌
// user_id 为 Google 账号的稳定标识，后续请求的缓存分区以此为键
func (s *JWTService) GenerateAccessToken(googleID string) (string, time.Time, error) {
	expiry := time.Now().Add(s.expiresIn)
	claims := jwt.MapClaims{
		"user_id": googleID,
		"type":    "access",
		"exp":     expiry.Unix(),
		"iat":     time.Now().Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return token, expiry, nil
}

// ParseToken 解析并校验访问令牌
func (s *JWTService) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
