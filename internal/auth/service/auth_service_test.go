package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/constructerp/erp-backend/internal/auth/domain"
	"github.com/constructerp/erp-backend/internal/auth/session"
)

type memUsers struct {
	byName map[string]*domain.User
	nextID int64
}

func (m *memUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if u, ok := m.byName[username]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) Create(ctx context.Context, username, passwordHash, role string) (*domain.User, error) {
	if _, ok := m.byName[username]; ok {
		return nil, domain.ErrUsernameTaken
	}
	m.nextID++
	u := &domain.User{ID: m.nextID, Username: username, PasswordHash: passwordHash, Role: role, CreatedAt: time.Now()}
	m.byName[username] = u
	return u, nil
}

func setupService(t *testing.T) (*Service, *memUsers) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := session.NewStore(client, time.Hour)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &memUsers{byName: map[string]*domain.User{
		"foreman": {ID: 1, Username: "foreman", PasswordHash: string(hash), Role: "admin"},
	}, nextID: 1}

	return NewService(users, sessions, "test-secret", time.Hour), users
}

func TestLoginAndVerify(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	u, token, err := svc.Login(ctx, "foreman", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "admin", u.Role)

	id, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.UserID)
	assert.Equal(t, "admin", id.Role)
	assert.NotEmpty(t, id.SessionID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := setupService(t)

	_, _, err := svc.Login(context.Background(), "foreman", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	// Unknown usernames surface the same error as bad passwords so the
	// response does not leak which usernames exist.
	svc, _ := setupService(t)

	_, _, err := svc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, token, err := svc.Login(ctx, "foreman", "correct horse")
	require.NoError(t, err)

	other := NewService(nil, nil, "different-secret", time.Hour)
	_, err = other.parse(token)
	assert.Error(t, err)

	_, err = svc.Verify(ctx, token+"x")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogoutDeletesSession(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, token, err := svc.Login(ctx, "foreman", "correct horse")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestLogoutWithGarbageTokenIsNoop(t *testing.T) {
	svc, _ := setupService(t)
	assert.NoError(t, svc.Logout(context.Background(), "garbage"))
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, users := setupService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "clerk", "another pass", "")
	require.NoError(t, err)
	assert.Equal(t, "user", u.Role) // default role

	stored := users.byName["clerk"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "another pass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("another pass")))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Register(context.Background(), "foreman", "whatever pw", "user")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}
