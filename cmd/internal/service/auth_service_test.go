package service

import (
	"net/http"
	"testing"
	"time"

	"notehub/cmd/internal/contract"
	"notehub/cmd/internal/domain/entity"
	"notehub/cmd/internal/domain/sqlite/repository"
	"notehub/cmd/internal/ratelimit"
	"notehub/cmd/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	utils.InitJWT("test-secret")
	m.Run()
}

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewTokenRepository(db),
		newTestValidate(t),
		nil,
		time.Hour,
	)
	return svc, db
}

func registerReq(email string) *contract.RegisterRequest {
	return &contract.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "Password1!",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	resp, apierr := svc.Register(registerReq("Ada@Example.com"))
	require.Nil(t, apierr)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)

	// Login is case-insensitive on email
	login, apierr := svc.Login(&contract.LoginRequest{Email: "ADA@example.com", Password: "Password1!"})
	require.Nil(t, apierr)
	assert.Equal(t, resp.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, apierr := svc.Register(registerReq("ada@example.com"))
	require.Nil(t, apierr)

	_, apierr = svc.Register(registerReq("ada@example.com"))
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
	assert.Equal(t, "Email already exists", apierr.Message())
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	req := registerReq("ada@example.com")
	req.Password = "alllowercase1!"

	_, apierr := svc.Register(req)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)

	_, apierr := svc.Register(registerReq("ada@example.com"))
	require.Nil(t, apierr)

	// Unknown email and wrong password are indistinguishable
	_, apierr = svc.Login(&contract.LoginRequest{Email: "nobody@example.com", Password: "Password1!"})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusUnauthorized, apierr.Code())
	assert.Equal(t, "Invalid email or password", apierr.Message())

	_, apierr = svc.Login(&contract.LoginRequest{Email: "ada@example.com", Password: "Wrong password1!"})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusUnauthorized, apierr.Code())
	assert.Equal(t, "Invalid email or password", apierr.Message())
}

func TestLoginRateLimited(t *testing.T) {
	svc, _ := newAuthService(t)
	svc.Limiter = ratelimit.NewKeyedLimiter(0.001, 2)

	req := &contract.LoginRequest{Email: "ada@example.com", Password: "Wrong password1!"}
	for i := 0; i < 2; i++ {
		_, apierr := svc.Login(req)
		require.NotNil(t, apierr)
		assert.Equal(t, http.StatusUnauthorized, apierr.Code())
	}

	_, apierr := svc.Login(req)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusTooManyRequests, apierr.Code())
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, db := newAuthService(t)
	tokenRepo := repository.NewTokenRepository(db)

	resp, apierr := svc.Register(registerReq("ada@example.com"))
	require.Nil(t, apierr)

	data, err := utils.ValidateToken(resp.Token)
	require.NoError(t, err)

	require.Nil(t, svc.Logout(data))

	revoked, err := tokenRepo.IsRevoked(data.JTI)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _ := newAuthService(t)

	_, apierr := svc.Register(registerReq("ada@example.com"))
	require.Nil(t, apierr)

	raw, apierr := svc.SendPasswordResetLink(&contract.ResetLinkRequest{Email: "ada@example.com"})
	require.Nil(t, apierr)
	require.NotEmpty(t, raw)

	apierr = svc.ResetPassword(&contract.ResetPasswordRequest{
		Email:    "ada@example.com",
		Token:    raw,
		Password: "NewPassword1!",
	})
	require.Nil(t, apierr)

	// Old password is out, new one is in
	_, apierr = svc.Login(&contract.LoginRequest{Email: "ada@example.com", Password: "Password1!"})
	require.NotNil(t, apierr)

	_, apierr = svc.Login(&contract.LoginRequest{Email: "ada@example.com", Password: "NewPassword1!"})
	require.Nil(t, apierr)

	// Tokens are single-use
	apierr = svc.ResetPassword(&contract.ResetPasswordRequest{
		Email:    "ada@example.com",
		Token:    raw,
		Password: "AnotherPassword1!",
	})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
}

func TestSendPasswordResetLinkUnknownEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, apierr := svc.SendPasswordResetLink(&contract.ResetLinkRequest{Email: "nobody@example.com"})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusNotFound, apierr.Code())
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, db := newAuthService(t)
	tokenRepo := repository.NewTokenRepository(db)

	_, apierr := svc.Register(registerReq("ada@example.com"))
	require.Nil(t, apierr)

	raw, apierr := svc.SendPasswordResetLink(&contract.ResetLinkRequest{Email: "ada@example.com"})
	require.Nil(t, apierr)

	// Backdate the record past the TTL
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.MinCost)
	require.NoError(t, err)
	stale := utils.NowUTC() - (PasswordResetTTL + time.Minute).Milliseconds()
	require.NoError(t, tokenRepo.SaveReset(&entity.PasswordReset{
		Email:     "ada@example.com",
		TokenHash: string(hash),
		CreatedAt: stale,
	}))

	apierr = svc.ResetPassword(&contract.ResetPasswordRequest{
		Email:    "ada@example.com",
		Token:    raw,
		Password: "NewPassword1!",
	})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
	assert.Equal(t, "Invalid or expired reset token", apierr.Message())
}

func TestResetPasswordWrongToken(t *testing.T) {
	svc, _ := newAuthService(t)

	_, apierr := svc.Register(registerReq("ada@example.com"))
	require.Nil(t, apierr)

	_, apierr = svc.SendPasswordResetLink(&contract.ResetLinkRequest{Email: "ada@example.com"})
	require.Nil(t, apierr)

	apierr = svc.ResetPassword(&contract.ResetPasswordRequest{
		Email:    "ada@example.com",
		Token:    "not-the-token",
		Password: "NewPassword1!",
	})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
}

func TestDeleteAccountCascades(t *testing.T) {
	svc, db := newAuthService(t)
	noteRepo := repository.NewNoteRepository(db)

	resp, apierr := svc.Register(registerReq("ada@example.com"))
	require.Nil(t, apierr)

	user, err := svc.UserRepo.FindByID(resp.User.ID)
	require.NoError(t, err)
	seedNote(t, db, &entity.Note{UserID: user.ID, Content: "owned"})

	require.Nil(t, svc.DeleteAccount(user))

	gone, err := svc.UserRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	notes, err := noteRepo.FindAllByOwner(user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
