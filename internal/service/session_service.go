package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"interview-stories/internal/domain"
)

const sessionIssuer = "interview-stories"

// SessionService emite y valida tokens de sesion firmados (HS256).
type SessionService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	store  RevocationStore
	now    func() time.Time
}

type SessionToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

var ErrSessionNotConfigured = errors.New("session secret not configured")

func NewSessionService(secret string, ttl time.Duration, store RevocationStore) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if store == nil {
		store = NewMemoryRevocationStore()
	}
	return &SessionService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: sessionIssuer,
		store:  store,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Issue firma un token para la cuenta ya autenticada.
func (s *SessionService) Issue(account domain.Account) (SessionToken, error) {
	if len(s.secret) == 0 {
		return SessionToken{}, ErrSessionNotConfigured
	}
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		UserID: account.ID,
		Email:  account.Email,
		Name:   account.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, ExpiresAt: expiresAt.Truncate(time.Second)}, nil
}

// Resolve valida firma, emisor, expiracion y revocacion. Cualquier fallo es
// ErrUnauthenticated (o ErrSessionExpired, que compara igual con errors.Is).
func (s *SessionService) Resolve(_ context.Context, token string) (domain.Identity, error) {
	claims, err := s.parse(token)
	if err != nil {
		return domain.Identity{}, err
	}
	revoked, err := s.store.IsRevoked(claims.ID)
	if err != nil || revoked {
		return domain.Identity{}, ErrUnauthenticated
	}
	return domain.Identity{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}

// Revoke invalida el token hasta su expiracion natural. Tokens invalidos se ignoran.
func (s *SessionService) Revoke(_ context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	return s.store.Revoke(claims.ID, ttl)
}

func (s *SessionService) parse(tokenString string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrUnauthenticated
	}
	if strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrUnauthenticated
	}
	var claims Claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrSessionExpired
		}
		return Claims{}, ErrUnauthenticated
	}
	if !validClaims(claims) {
		return Claims{}, ErrUnauthenticated
	}
	return claims, nil
}

func validClaims(claims Claims) bool {
	if strings.TrimSpace(claims.UserID) == "" {
		return false
	}
	if claims.Subject != claims.UserID {
		return false
	}
	return strings.TrimSpace(claims.ID) != ""
}
