package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/microblog/internal/common/clock"
	"github.com/AlibekovAA/microblog/internal/common/constants"
	"github.com/AlibekovAA/microblog/internal/common/jwtverify"
	"github.com/AlibekovAA/microblog/internal/observability/metrics"
)

var (
	ErrMalformed    = jwtverify.ErrMalformed
	ErrBadSignature = jwtverify.ErrBadSignature
	ErrExpired      = jwtverify.ErrExpired
	ErrEmptySecret  = errors.New("token secret is empty")
)

type claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Service issues and verifies HS256 identity tokens. It holds no mutable
// state and is safe for concurrent use.
type Service struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewService(secret string, ttl time.Duration, clk clock.Clock) (*Service, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = constants.DefaultTokenTTL
	}
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
	}, nil
}

func (s *Service) Issue(accountID, handle string) (string, error) {
	now := s.clock.Now()
	c := claims{
		Name: handle,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	metrics.AccessTokensIssued.Inc()
	return signed, nil
}

func (s *Service) Verify(tokenString string) (jwtverify.Claims, error) {
	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c, s.keyFunc,
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return jwtverify.Claims{}, classify(err)
	}

	if c.Subject == "" || c.Name == "" {
		return jwtverify.Claims{}, fmt.Errorf("%w: missing sub or name claim", ErrMalformed)
	}

	return jwtverify.Claims{
		UserID:   c.Subject,
		Username: c.Name,
	}, nil
}

func (s *Service) keyFunc(t *jwt.Token) (any, error) {
	if t.Method != jwt.SigningMethodHS256 {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return s.secret, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
