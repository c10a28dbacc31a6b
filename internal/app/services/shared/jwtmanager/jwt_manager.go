package jwtmanager

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// JWTManager signs and verifies the short-lived bearer tokens presented to
// the clearinghouse proxy. Tokens are HS256, keyed with the proxy API key.
type JWTManager struct {
	log    *zap.Logger
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewJWTManager(secret, issuer string, ttl time.Duration, log *zap.Logger) (*JWTManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt signing secret is empty")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &JWTManager{
		log:    log,
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// CreateToken signs a token scoped to one upload. Subject carries the
// invoice number so proxy-side logs correlate with ours.
func (jm *JWTManager) CreateToken(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    jm.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(jm.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jm.secret)
	if err != nil {
		jm.log.Error("jwtManager.CreateToken error signing token", zap.Error(err))
		return "", err
	}
	return signed, nil
}

// VerifyToken validates signature and standard time claims.
func (jm *JWTManager) VerifyToken(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := new(jwt.RegisteredClaims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return jm.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	return claims, nil
}
