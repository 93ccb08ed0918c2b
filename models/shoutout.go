package models

// Shoutout is a company-wide announcement
type Shoutout struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64  `gorm:"index"`
	CompanyID   uint64  `gorm:"index"`
	Company     Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedByID uint64
	CreatedBy   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Title       string `gorm:"type:varchar(300)"`
	Body        string `gorm:"type:text"`
}
