package repository

import (
	"errors"

	"notehub/cmd/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultTokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *DefaultTokenRepository {
	return &DefaultTokenRepository{db: db}
}

func (t *DefaultTokenRepository) Revoke(jti string, expiresAt int64) error {
	token := &entity.RevokedToken{JTI: jti, ExpiresAt: expiresAt}
	return t.db.Clauses(clause.OnConflict{DoNothing: true}).Create(token).Error
}

func (t *DefaultTokenRepository) IsRevoked(jti string) (bool, error) {
	var exists int
	err := t.db.
		Raw("SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = ?)", jti).
		Scan(&exists).Error
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

// DeleteExpired drops blacklist entries for tokens that are past their
// own expiry and can no longer be replayed.
func (t *DefaultTokenRepository) DeleteExpired(now int64) (int64, error) {
	res := t.db.Where("expires_at <= ?", now).Delete(&entity.RevokedToken{})
	return res.RowsAffected, res.Error
}

// SaveReset upserts: a resend replaces the previous token for the email.
func (t *DefaultTokenRepository) SaveReset(reset *entity.PasswordReset) error {
	return t.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"token_hash", "created_at"}),
	}).Create(reset).Error
}

func (t *DefaultTokenRepository) FindResetByEmail(email string) (*entity.PasswordReset, error) {
	var reset entity.PasswordReset
	err := t.db.Where("email = ?", email).First(&reset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &reset, nil
}

func (t *DefaultTokenRepository) DeleteResetByEmail(email string) error {
	return t.db.Where("email = ?", email).Delete(&entity.PasswordReset{}).Error
}

func (t *DefaultTokenRepository) DeleteStaleResets(cutoff int64) (int64, error) {
	res := t.db.Where("created_at <= ?", cutoff).Delete(&entity.PasswordReset{})
	return res.RowsAffected, res.Error
}
