package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/myrecipebox/backend/internal/models"
	"github.com/myrecipebox/backend/internal/service"
	"github.com/myrecipebox/backend/internal/testhelpers"
)

func TestRegister(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewAccountService(db, "test-secret")

	user, err := svc.Register(context.Background(), "alice", "a@example.com", "Alice", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@example.com", user.Email)
	assert.Equal(t, "Alice", user.Name)

	// Never stored in the clear.
	assert.NotEqual(t, "pw123456", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123456")))
}

func TestRegisterDuplicateEmailCheckedFirst(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewAccountService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "a@example.com", "Alice", "pw123456")
	require.NoError(t, err)

	// Both email and username collide; the email error wins.
	_, err = svc.Register(ctx, "alice", "a@example.com", "Alice Again", "pw123456")
	assert.ErrorIs(t, err, service.ErrDuplicateEmail)

	_, err = svc.Register(ctx, "alice", "other@example.com", "Alice Again", "pw123456")
	assert.ErrorIs(t, err, service.ErrDuplicateUsername)

	// Neither failed attempt wrote a row.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAuthenticate(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewAccountService(db, "test-secret")
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "a@example.com", "Alice", "pw123456")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "alice", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	// A missing user looks the same as a bad password.
	_, err = svc.Authenticate(ctx, "nobody", "pw123456")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewAccountService(db, "test-secret")

	user, err := svc.Register(context.Background(), "alice", "a@example.com", "Alice", "pw123456")
	require.NoError(t, err)

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "Alice", claims.Name)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	issuer := service.NewAccountService(db, "secret-one")
	verifier := service.NewAccountService(db, "secret-two")

	user, err := issuer.Register(context.Background(), "alice", "a@example.com", "Alice", "pw123456")
	require.NoError(t, err)

	token, err := issuer.GenerateToken(user)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestAccountUnavailableOperations(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewAccountService(db, "test-secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "a@example.com", "Alice", "pw123456")
	require.NoError(t, err)

	err = svc.Delete(ctx, user.ID)
	assert.ErrorIs(t, err, service.ErrAccountDeletionNotAvailable)
	assert.Contains(t, err.Error(), service.SupportEmail)

	err = svc.ResetPassword(ctx, user.ID)
	assert.ErrorIs(t, err, service.ErrPasswordResetNotAvailable)

	// The account survives the refused deletion.
	_, err = svc.Get(ctx, user.ID)
	assert.NoError(t, err)
}
