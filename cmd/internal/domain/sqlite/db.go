package sqlite

import (
	"time"

	"notehub/cmd/internal/domain/entity"
	"notehub/cmd/internal/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func Init(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Note{},
		&entity.PrivacyPolicy{},
		&entity.PasswordReset{},
		&entity.RevokedToken{},
	)
	if err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Seed inserts the initial privacy policy when the table is empty, so a
// fresh install always serves something from /getPrivacyPolicy.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.PrivacyPolicy{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	now := utils.NowUTC()
	policy := &entity.PrivacyPolicy{
		Version:       "1.0",
		Content:       defaultPolicyContent,
		IsActive:      true,
		EffectiveDate: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return db.Create(policy).Error
}

const defaultPolicyContent = `# Privacy Policy

## 1. Introduction

We are committed to protecting your privacy and ensuring the security of
your personal information. This policy explains how we collect, use and
safeguard your information when you use our note-taking application.

## 2. Information We Collect

- First and last name
- Email address
- Password (stored as a one-way hash)
- Notes, their categories and timestamps

## 3. How We Use Your Information

We use the information we collect to operate the service, authenticate
your account and send password reset emails when requested.

## 4. Data Sharing

We do not sell, trade or otherwise transfer your personal information to
third parties. Your notes remain private and are only accessible to you.

## 5. Your Rights

You may access, update or delete your account and all associated data at
any time.`
