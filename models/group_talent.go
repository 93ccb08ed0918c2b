package models

type GroupTalent struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int    `gorm:"index"`
	GroupID   uint64 `gorm:"index:uniq_g_t,priority:1,unique;index:idx_t_g,priority:2;"`
	Group     Group  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	TalentID  uint64 `gorm:"index:uniq_g_t,priority:2,unique;index:idx_t_g,priority:1;"`
	Talent    Talent `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
