package entity

// PasswordReset holds a pending reset request. The raw token is never
// stored, only its bcrypt hash. One row per email, replaced on resend.
type PasswordReset struct {
	Email     string `gorm:"primaryKey"`
	TokenHash string `gorm:"not null"`
	CreatedAt int64  `gorm:"not null;autoCreateTime:false"`
}

// RevokedToken blacklists a JWT by its jti until the token would have
// expired anyway. Rows are purged by the cleaner job.
type RevokedToken struct {
	JTI       string `gorm:"primaryKey"`
	ExpiresAt int64  `gorm:"not null;index"`
}
