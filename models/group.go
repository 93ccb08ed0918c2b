package models

import "server/db"

// Group is a company-scoped grouping of talent (e.g. a cast or a call list)
type Group struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	CompanyID   uint64  `gorm:"index:uniq_company_group,unique"`
	Company     Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedByID uint64
	CreatedBy   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Name        string `gorm:"type:varchar(300);index:uniq_company_group,unique"`
}

func LoadGroupTalentIDs(groupID uint64) map[uint64]string {
	result := map[uint64]string{}
	rows, err := db.Instance.
		Table("group_talents").
		Joins("join talents on talents.id=talent_id").
		Select("talent_id, talents.name").
		Where("group_id = ?", groupID).
		Rows()
	if err != nil {
		return result
	}
	id := uint64(0)
	name := ""
	for rows.Next() {
		if err = rows.Scan(&id, &name); err != nil {
			continue
		}
		result[id] = name
	}
	rows.Close()
	return result
}
