package jwtPkg

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyHeader   = errors.New("empty Authorization header")
	ErrInvalidFormat = errors.New("invalid Authorization format")
	ErrInvalidClaims = errors.New("invalid token claims")
)

type ItfJWT interface {
	Sign(subject string, data map[string]interface{}) (string, int64, error)
	Verify(accessToken string) (jwt.MapClaims, error)
}

type signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string, ttl time.Duration) ItfJWT {
	return &signer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *signer) Sign(subject string, data map[string]interface{}) (string, int64, error) {
	now := s.now()
	expiredAt := now.Add(s.ttl).Unix()

	claims := jwt.MapClaims{}
	for k, v := range data {
		claims[k] = v
	}
	claims["sub"] = subject
	claims["iat"] = now.Unix()
	claims["exp"] = expiredAt

	logrus.WithField("sub", subject).Debug("Creating token with claims")

	to := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := to.SignedString(s.secret)
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", 0, err
	}

	return accessToken, expiredAt, nil
}

func (s *signer) Verify(accessToken string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// SplitAuthorization returns the scheme and the credentials of an
// Authorization header value.
func SplitAuthorization(header string) (string, string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", "", ErrEmptyHeader
	}

	scheme, value, ok := strings.Cut(header, " ")
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return "", "", ErrInvalidFormat
	}

	return strings.ToLower(scheme), value, nil
}
