package entity

// PrivacyPolicy is a versioned legal document. At most one policy is
// active at any time; activation is handled transactionally by the
// policy repository.
type PrivacyPolicy struct {
	ID            int    `gorm:"primaryKey"`
	Version       string `gorm:"not null;uniqueIndex"`
	Content       string `gorm:"not null"`
	IsActive      bool   `gorm:"not null;default:false"`
	EffectiveDate int64  `gorm:"not null"`
	CreatedAt     int64  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt     int64  `gorm:"not null;autoUpdateTime:false"`
}
