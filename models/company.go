package models

import "server/db"

// Company is the organization-scoped entity ("production company") that
// invitations, talent and role grants are attached to
type Company struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	CreatedByID *uint64
	CreatedBy   *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Name        string `gorm:"type:varchar(300);unique"`
}

func CompanyByID(id uint64) (company Company, err error) {
	err = db.Instance.First(&company, id).Error
	return
}
