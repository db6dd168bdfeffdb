package service

import (
	"strings"

	"notehub/cmd/internal/contract"
	"notehub/cmd/internal/domain/entity"
	"notehub/cmd/internal/utils"
	"notehub/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

type ProfileService struct {
	UserRepo UserRepository
	Validate *validator.Validate
}

func NewProfileService(userRepo UserRepository, validate *validator.Validate) *ProfileService {
	return &ProfileService{
		UserRepo: userRepo,
		Validate: validate,
	}
}

// UpdateProfile applies only the fields present in the request. A new
// email must not collide with another account.
func (p *ProfileService) UpdateProfile(actor *entity.User, req *contract.UpdateProfileRequest) (*contract.UserResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := p.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	dirty := false
	if req.FirstName != nil {
		actor.FirstName = *req.FirstName
		dirty = true
	}
	if req.LastName != nil {
		actor.LastName = *req.LastName
		dirty = true
	}

	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		if email != actor.Email {
			taken, err := p.UserRepo.ExistsByEmail(email)
			if err != nil {
				log.Errorf("failed to check email availability: %v", err)
				return nil, apierror.InternalServerError
			}

			if taken {
				return nil, apierror.EmailTakenError
			}

			actor.Email = email
			dirty = true
		}
	}

	if dirty {
		actor.UpdatedAt = utils.NowUTC()
		if err := p.UserRepo.Save(actor); err != nil {
			log.Errorf("failed to update profile for user %d: %v", actor.ID, err)
			return nil, apierror.InternalServerError
		}
	}
	return toUserResponse(actor), nil
}

// UpdatePassword verifies the current password before replacing it. A
// mismatch is a bad-input condition, not an authentication failure.
func (p *ProfileService) UpdatePassword(actor *entity.User, req *contract.UpdatePasswordRequest) apierror.ErrorResponse {
	if err := p.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(actor.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return apierror.WrongPasswordError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return apierror.InternalServerError
	}

	actor.PasswordHash = string(hash)
	actor.UpdatedAt = utils.NowUTC()
	if err := p.UserRepo.Save(actor); err != nil {
		log.Errorf("failed to update password for user %d: %v", actor.ID, err)
		return apierror.InternalServerError
	}
	return nil
}
