package repository

import (
	"errors"

	"notehub/cmd/internal/domain/entity"
	"notehub/cmd/internal/utils"

	"gorm.io/gorm"
)

type DefaultPolicyRepository struct {
	db *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) *DefaultPolicyRepository {
	return &DefaultPolicyRepository{db: db}
}

func (p *DefaultPolicyRepository) FindActive() (*entity.PrivacyPolicy, error) {
	var policy entity.PrivacyPolicy
	err := p.db.
		Where("is_active = ?", true).
		Order("effective_date DESC").
		First(&policy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (p *DefaultPolicyRepository) FindByVersion(version string) (*entity.PrivacyPolicy, error) {
	var policy entity.PrivacyPolicy
	err := p.db.Where("version = ?", version).First(&policy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (p *DefaultPolicyRepository) FindAll() ([]*entity.PrivacyPolicy, error) {
	var policies []*entity.PrivacyPolicy
	err := p.db.Order("effective_date DESC").Find(&policies).Error
	if err != nil {
		return nil, err
	}
	return policies, nil
}

func (p *DefaultPolicyRepository) Save(policy *entity.PrivacyPolicy) error {
	return p.db.Save(policy).Error
}

// Activate makes the given policy the single active one. Deactivating
// the others and activating this one must be atomic, or a race could
// leave zero or two policies active.
func (p *DefaultPolicyRepository) Activate(policy *entity.PrivacyPolicy) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&entity.PrivacyPolicy{}).
			Where("id <> ?", policy.ID).
			Update("is_active", false).Error
		if err != nil {
			return err
		}

		return tx.Model(policy).Updates(map[string]any{
			"is_active":  true,
			"updated_at": utils.NowUTC(),
		}).Error
	})
}
