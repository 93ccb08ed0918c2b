package models

import (
	"server/storage"
)

// Talent is the domain profile of a person managed by a company. A talent
// may exist without a login; UserID links the profile 1:1 to an account
// once one is provisioned (e.g. by accepting an invitation).
type Talent struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	CompanyID uint64  `gorm:"index"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    *uint64 `gorm:"index:uniq_talent_user,unique"`
	User      *User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Name      string  `gorm:"type:varchar(300)"`
	Email     string  `gorm:"type:varchar(150);index"` // always stored lower-cased

	// Headshot, if uploaded
	BucketID      *uint64
	Bucket        storage.Bucket `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	HeadshotPath  string         `gorm:"type:varchar(300)"`
	ThumbPath     string         `gorm:"type:varchar(300)"`
	ThumbWidth    uint16
	ThumbHeight   uint16
	HeadshotSize  int64
	ThumbSize     int64
}
