package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/constructerp/erp-backend/internal/auth/domain"
	"github.com/constructerp/erp-backend/internal/auth/session"
)

// UserStore is the slice of the user repository the service needs.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, username, passwordHash, role string) (*domain.User, error)
}

// Claims is the cookie payload: the caller's identity plus the server-side
// session id that must still exist in Redis for the token to be good.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	users    UserStore
	sessions *session.Store
	secret   []byte
	ttl      time.Duration
}

func NewService(users UserStore, sessions *session.Store, secret string, ttl time.Duration) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
	}
}

// TTL reports the session lifetime so the HTTP layer can size the cookie.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Login checks the password and opens a session. The returned string is the
// signed token destined for the http-only cookie.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err == domain.ErrUserNotFound {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, u.ID, u.Role)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	token, err := s.sign(u, sess)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return u, token, nil
}

// Register creates a user with a bcrypt-hashed password. Role defaults to
// "user" when empty.
func (s *Service) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if role == "" {
		role = "user"
	}
	return s.users.Create(ctx, username, string(hash), role)
}

// Logout deletes the server-side session named by the token. A bad token is
// not an error here; the cookie gets cleared either way.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, claims.ID)
}

// Verify resolves a cookie token into a caller identity. The signature, the
// expiry and the Redis session must all check out.
func (s *Service) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	sess, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	return &domain.Identity{
		UserID:    sess.UserID,
		Role:      sess.Role,
		SessionID: sess.ID,
	}, nil
}

func (s *Service) sign(u *domain.User, sess *domain.Session) (string, error) {
	claims := Claims{
		UserID: u.ID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
