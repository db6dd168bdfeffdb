package entity

type Note struct {
	ID         int     `gorm:"primaryKey"`
	UserID     int64   `gorm:"not null;index"` // References: users(id), never reassigned
	Title      *string `gorm:"size:255"`
	Content    string  `gorm:"not null"`
	CategoryID *int
	IsPinned   bool  `gorm:"not null;default:false"`
	CreatedAt  int64 `gorm:"not null;autoCreateTime:false"`
	UpdatedAt  int64 `gorm:"not null;autoUpdateTime:false"`
}
