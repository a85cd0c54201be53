package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"libreria-backend/internal/domains/auth"
	"libreria-backend/pkg/jwt"
)

// fakeRepo is an in-memory auth.Repository that counts lookups so tests can
// assert that forged tokens never reach the database.
type fakeRepo struct {
	users       map[uuid.UUID]*auth.User
	lookupCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uuid.UUID]*auth.User)}
}

func (r *fakeRepo) Create(_ context.Context, user *auth.User) (*auth.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email && existing.DeletedAt == nil {
			return nil, auth.ErrEmailTaken
		}
	}
	stored := *user
	stored.ID = uuid.New()
	stored.IsActive = true
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.users[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.IsActive && u.DeletedAt == nil {
			return u, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	if u, ok := r.users[id]; ok && u.DeletedAt == nil {
		return u, nil
	}
	return nil, auth.ErrUserNotFound
}

func (r *fakeRepo) GetByIDAndRefreshToken(_ context.Context, id uuid.UUID, token string) (*auth.User, error) {
	r.lookupCalls++
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil || !u.IsActive {
		return nil, auth.ErrUserNotFound
	}
	if u.RefreshToken == nil || *u.RefreshToken != token {
		return nil, auth.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeRepo) UpdateRefreshToken(_ context.Context, id uuid.UUID, token *string) error {
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return auth.ErrUserNotFound
	}
	u.RefreshToken = token
	return nil
}

func newService(repo auth.Repository) auth.Service {
	manager := jwt.NewManager(jwt.Config{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
	return NewAuthService(repo, manager)
}

func registerUser(t *testing.T, svc auth.Service, email string) *auth.AuthResp {
	t.Helper()
	resp, err := svc.Register(context.Background(), &auth.RegisterReq{
		Email:    email,
		Password: "secreto123",
		Name:     "Ana",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister_IssuesTokensAndHidesSecrets(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	resp := registerUser(t, svc, "ana@example.com")

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "ana@example.com", resp.User.Email)

	// The stored hash is bcrypt, never the plain password.
	stored, err := repo.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto123")))
	assert.Equal(t, []string{"user"}, stored.Roles)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, resp.RefreshToken, *stored.RefreshToken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	registerUser(t, svc, "ana@example.com")

	_, err := svc.Register(context.Background(), &auth.RegisterReq{
		Email:    "ana@example.com",
		Password: "otra123",
		Name:     "Otra",
	})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()

	registerUser(t, svc, "ana@example.com")

	_, errWrongPassword := svc.Login(ctx, &auth.LoginReq{Email: "ana@example.com", Password: "mala"})
	_, errUnknownEmail := svc.Login(ctx, &auth.LoginReq{Email: "nadie@example.com", Password: "mala"})

	assert.ErrorIs(t, errWrongPassword, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, auth.ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestLogin_InactiveUserRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()

	resp := registerUser(t, svc, "ana@example.com")
	repo.users[resp.User.ID].IsActive = false

	_, err := svc.Login(ctx, &auth.LoginReq{Email: "ana@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefresh_RotatesStoredToken(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()

	first := registerUser(t, svc, "ana@example.com")

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, second.RefreshToken)

	// Only one refresh token is live per user: the stored value is the new one.
	stored := repo.users[first.User.ID]
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, second.RefreshToken, *stored.RefreshToken)
}

func TestRefresh_TamperedTokenNeverHitsRepository(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()

	resp := registerUser(t, svc, "ana@example.com")
	repo.lookupCalls = 0

	tampered := resp.RefreshToken[:len(resp.RefreshToken)-2] + "xx"
	_, err := svc.Refresh(ctx, tampered)

	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	assert.Zero(t, repo.lookupCalls)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	resp := registerUser(t, svc, "ana@example.com")

	_, err := svc.Refresh(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}

func TestLogout_InvalidatesRefreshToken(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()

	resp := registerUser(t, svc, "ana@example.com")

	require.NoError(t, svc.Logout(ctx, resp.User.ID))
	assert.Nil(t, repo.users[resp.User.ID].RefreshToken)

	// A signature-valid but cleared token no longer refreshes.
	_, err := svc.Refresh(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)

	// Logout is idempotent.
	require.NoError(t, svc.Logout(ctx, resp.User.ID))
}

func TestValidateToken_BestEffort(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()

	resp := registerUser(t, svc, "ana@example.com")

	assert.True(t, svc.ValidateToken(ctx, resp.AccessToken))
	assert.False(t, svc.ValidateToken(ctx, "garbage"))
	assert.False(t, svc.ValidateToken(ctx, resp.RefreshToken))

	repo.users[resp.User.ID].IsActive = false
	assert.False(t, svc.ValidateToken(ctx, resp.AccessToken))
}
