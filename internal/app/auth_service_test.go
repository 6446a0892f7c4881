package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carnage-ai/internal/model"
	"carnage-ai/internal/repository"
)

func newAuthService(t *testing.T) (*AuthService, *fakeSessionStore, *repository.UserRepository) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	sessions := newFakeSessionStore()
	svc := NewAuthService(userRepo, sessions, "test-secret", time.Hour)
	return svc, sessions, userRepo
}

func TestSignUpMissingFields(t *testing.T) {
	svc, _, userRepo := newAuthService(t)

	_, err := svc.SignUp(SignUpInput{Email: "", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SignUp(SignUpInput{Email: "a@x.com", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)

	user, err := userRepo.GetByEmail("a@x.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestSignUpWeakPassword(t *testing.T) {
	svc, _, userRepo := newAuthService(t)

	_, err := svc.SignUp(SignUpInput{Email: "a@x.com", Password: "short"})
	assert.ErrorIs(t, err, ErrWeakPassword)

	user, err := userRepo.GetByEmail("a@x.com")
	require.NoError(t, err)
	assert.Nil(t, user, "no account should be created for a weak password")
}

func TestSignUpNormalizesEmailAndRejectsDuplicates(t *testing.T) {
	svc, _, _ := newAuthService(t)

	user, err := svc.SignUp(SignUpInput{Email: "  A@X.Com ", Password: "secret1", FullName: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "Ada", user.FullName)
	assert.NotZero(t, user.ID)

	_, err = svc.SignUp(SignUpInput{Email: "a@x.com", Password: "another1"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestSignInInvalidCredential(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.SignUp(SignUpInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, SignInInput{Email: "a@x.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.SignIn(ctx, SignInInput{Email: "nobody@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredential, "unknown email must be indistinguishable from a wrong password")
}

func TestSignInCreatesSession(t *testing.T) {
	svc, sessions, _ := newAuthService(t)
	ctx := context.Background()

	signedUp, err := svc.SignUp(SignUpInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	result, err := svc.SignIn(ctx, SignInInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, signedUp.ID, result.User.ID)
	assert.NotEmpty(t, result.AccessToken)
	require.NotNil(t, result.Session)

	record, ok, err := sessions.Get(ctx, result.Session.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, signedUp.ID, record.UserID)
}

func TestCurrentUserAndSignOut(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.SignUp(SignUpInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	result, err := svc.SignIn(ctx, SignInInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	var user *model.User
	user, err = svc.CurrentUser(ctx, result.User.ID, result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)

	_, err = svc.CurrentUser(ctx, result.User.ID+1, result.Session.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.SignOut(ctx, result.Session.ID))
	_, err = svc.CurrentUser(ctx, result.User.ID, result.Session.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
