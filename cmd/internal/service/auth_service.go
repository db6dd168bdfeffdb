package service

import (
	"strings"
	"time"

	"notehub/cmd/internal/contract"
	"notehub/cmd/internal/domain/entity"
	"notehub/cmd/internal/ratelimit"
	"notehub/cmd/internal/utils"
	"notehub/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

// PasswordResetTTL is how long a reset token stays redeemable.
const PasswordResetTTL = time.Hour

type UserRepository interface {
	FindByID(id int64) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	ExistsByEmail(email string) (bool, error)
	Save(user *entity.User) error
	DeleteCascade(user *entity.User) error
}

type TokenRepository interface {
	Revoke(jti string, expiresAt int64) error
	SaveReset(reset *entity.PasswordReset) error
	FindResetByEmail(email string) (*entity.PasswordReset, error)
	DeleteResetByEmail(email string) error
}

type AuthService struct {
	UserRepo  UserRepository
	TokenRepo TokenRepository
	Validate  *validator.Validate
	Limiter   *ratelimit.KeyedLimiter
	TokenTTL  time.Duration
}

func NewAuthService(
	userRepo UserRepository,
	tokenRepo TokenRepository,
	validate *validator.Validate,
	limiter *ratelimit.KeyedLimiter,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		UserRepo:  userRepo,
		TokenRepo: tokenRepo,
		Validate:  validate,
		Limiter:   limiter,
		TokenTTL:  tokenTTL,
	}
}

func (a *AuthService) Register(req *contract.RegisterRequest) (*contract.AuthResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	email := strings.ToLower(req.Email)
	found, err := a.UserRepo.ExistsByEmail(email)
	if err != nil {
		log.Errorf("failed to check if user already exists: %v", err)
		return nil, apierror.InternalServerError
	}

	if found {
		return nil, apierror.EmailTakenError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	user := &entity.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := a.UserRepo.Save(user); err != nil {
		log.Errorf("failed to create user: %v", err)
		return nil, apierror.InternalServerError
	}

	token, err := utils.IssueToken(user, a.TokenTTL)
	if err != nil {
		log.Errorf("failed to issue token for new user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	return &contract.AuthResponse{User: toUserResponse(user), Token: token}, nil
}

func (a *AuthService) Login(req *contract.LoginRequest) (*contract.AuthResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	email := strings.ToLower(req.Email)
	if a.Limiter != nil && !a.Limiter.Allow(email) {
		return nil, apierror.TooManyAttemptsError
	}

	user, err := a.UserRepo.FindByEmail(email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return nil, apierror.InternalServerError
	}

	// Same response for unknown email and wrong password.
	if user == nil {
		return nil, apierror.CredentialsMismatchError
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apierror.CredentialsMismatchError
	}

	token, err := utils.IssueToken(user, a.TokenTTL)
	if err != nil {
		log.Errorf("failed to issue token for user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	return &contract.AuthResponse{User: toUserResponse(user), Token: token}, nil
}

// SendPasswordResetLink stores a bcrypt hash of a fresh token and hands
// the raw token back for delivery by the mail collaborator. It is never
// written to the response body.
func (a *AuthService) SendPasswordResetLink(req *contract.ResetLinkRequest) (string, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return "", apierror.FromValidationError(err)
	}

	email := strings.ToLower(req.Email)
	user, err := a.UserRepo.FindByEmail(email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return "", apierror.InternalServerError
	}

	if user == nil {
		return "", apierror.EmailNotFoundError
	}

	raw := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash reset token: %v", err)
		return "", apierror.InternalServerError
	}

	reset := &entity.PasswordReset{
		Email:     email,
		TokenHash: string(hash),
		CreatedAt: utils.NowUTC(),
	}

	if err := a.TokenRepo.SaveReset(reset); err != nil {
		log.Errorf("failed to store reset token for %s: %v", email, err)
		return "", apierror.InternalServerError
	}
	return raw, nil
}

// ResetPassword redeems a reset token issued by SendPasswordResetLink.
// Tokens are single-use and expire after PasswordResetTTL.
func (a *AuthService) ResetPassword(req *contract.ResetPasswordRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	email := strings.ToLower(req.Email)
	reset, err := a.TokenRepo.FindResetByEmail(email)
	if err != nil {
		log.Errorf("failed to fetch reset record for %s: %v", email, err)
		return apierror.InternalServerError
	}

	if reset == nil {
		return apierror.InvalidResetTokenError
	}

	if bcrypt.CompareHashAndPassword([]byte(reset.TokenHash), []byte(req.Token)) != nil {
		return apierror.InvalidResetTokenError
	}

	if utils.NowUTC()-reset.CreatedAt > PasswordResetTTL.Milliseconds() {
		return apierror.InvalidResetTokenError
	}

	user, err := a.UserRepo.FindByEmail(email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return apierror.InternalServerError
	}

	if user == nil {
		return apierror.InvalidResetTokenError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return apierror.InternalServerError
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = utils.NowUTC()
	if err := a.UserRepo.Save(user); err != nil {
		log.Errorf("failed to update password for user %d: %v", user.ID, err)
		return apierror.InternalServerError
	}

	if err := a.TokenRepo.DeleteResetByEmail(email); err != nil {
		log.Errorf("failed to delete redeemed reset token for %s: %v", email, err)
	}
	return nil
}

func (a *AuthService) GetProfile(actor *entity.User) *contract.UserResponse {
	return toUserResponse(actor)
}

// Logout blacklists the presented token by its jti until its natural
// expiry, so it cannot be replayed.
func (a *AuthService) Logout(token *utils.TokenData) apierror.ErrorResponse {
	expiresAt := token.Exp * 1000 // claims carry seconds, store keeps millis
	if err := a.TokenRepo.Revoke(token.JTI, expiresAt); err != nil {
		log.Errorf("failed to revoke token %s: %v", token.JTI, err)
		return apierror.InternalServerError
	}
	return nil
}

func (a *AuthService) DeleteAccount(actor *entity.User) apierror.ErrorResponse {
	if err := a.UserRepo.DeleteCascade(actor); err != nil {
		log.Errorf("failed to delete account %d: %v", actor.ID, err)
		return apierror.InternalServerError
	}
	return nil
}

func toUserResponse(user *entity.User) *contract.UserResponse {
	return &contract.UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		CreatedAt: utils.FormatEpoch(user.CreatedAt),
		UpdatedAt: utils.FormatEpoch(user.UpdatedAt),
	}
}
