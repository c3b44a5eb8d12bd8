package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/id"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	byEmail map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *User) error {
	r.byEmail[strings.ToLower(user.Email)] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID id.ID) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID)
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *User) error {
	r.byEmail[strings.ToLower(user.Email)] = user
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[strings.ToLower(email)]
	return ok, nil
}

func newTestService(repo *fakeUserRepo) *Service {
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret-do-not-use"))
	return NewService(repo, fakeTxManager{}, jwtSvc, DefaultServiceConfig())
}

func registerUser(t *testing.T, svc *Service, email, password string) *User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    email,
		Password: password,
		Role:     RoleCashier,
	})
	require.NoError(t, err)
	return user
}

func TestLogin_Succeeds(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	registerUser(t, svc, "till1@example.com", "correct-horse")

	token, user, err := svc.Login(context.Background(), Credentials{
		Email:    "till1@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.True(t, token.ExpiresAt.After(time.Now()))
	assert.NotNil(t, user.LastLoginAt)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	registerUser(t, svc, "till1@example.com", "correct-horse")

	_, _, err := svc.Login(context.Background(), Credentials{
		Email:    "till1@example.com",
		Password: "battery-staple",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, _, err := svc.Login(context.Background(), Credentials{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	assert.Equal(t, "invalid credentials", appErr.Message)
}

func TestLogin_LocksAfterRepeatedFailures(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	registerUser(t, svc, "till1@example.com", "correct-horse")

	for i := 0; i < DefaultServiceConfig().MaxLoginAttempts; i++ {
		_, _, err := svc.Login(context.Background(), Credentials{
			Email:    "till1@example.com",
			Password: "wrong",
		})
		require.Error(t, err)
	}

	// Correct password is refused while locked.
	_, _, err := svc.Login(context.Background(), Credentials{
		Email:    "till1@example.com",
		Password: "correct-horse",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestLogin_DisabledAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	user := registerUser(t, svc, "gone@example.com", "correct-horse")
	user.IsActive = false

	_, _, err := svc.Login(context.Background(), Credentials{
		Email:    "gone@example.com",
		Password: "correct-horse",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "x@example.com",
		Password: "short",
		Role:     RoleCashier,
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	registerUser(t, svc, "dup@example.com", "correct-horse")

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "dup@example.com",
		Password: "correct-horse",
		Role:     RoleManager,
	})
	require.Error(t, err)
}

func TestJWT_RoundTrip(t *testing.T) {
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret-do-not-use"))
	user := NewUser("claims@example.com", "irrelevant", RoleManager)

	signed, _, err := jwtSvc.GenerateAccessToken(user)
	require.NoError(t, err)

	uc, err := jwtSvc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), uc.UserID)
	assert.Equal(t, "claims@example.com", uc.Email)
	assert.Equal(t, "manager", uc.Role)
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	signer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))
	user := NewUser("claims@example.com", "irrelevant", RoleCashier)

	signed, _, err := signer.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(signed)
	require.Error(t, err)
}
