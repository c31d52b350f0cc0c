package jwtauth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken 签名、格式或算法不匹配
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken 超过 exp
	ErrExpiredToken = errors.New("token expired")
)

// Claims 业务声明：owner_id 标识 token 代表的用户
type Claims struct {
	OwnerID uint64 `json:"owner_id"`
	jwt.RegisteredClaims
}

// Service 负责签发与校验 HS256 token。无状态，不落库。
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue 签发绑定 ownerID 的 token，强制携带 exp（默认 1h，见配置）
func (s *Service) Issue(ownerID uint64) (string, error) {
	now := s.now()
	claims := Claims{
		OwnerID: ownerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Validate 校验签名与有效期，成功返回 ownerID。
// 算法固定 HS256，其他算法一律拒绝。
func (s *Service) Validate(tokenStr string) (uint64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpiredToken
		}
		return 0, ErrInvalidToken
	}
	if !token.Valid || claims.OwnerID == 0 {
		return 0, ErrInvalidToken
	}
	return claims.OwnerID, nil
}
