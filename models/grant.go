package models

type Role uint8

const (
	// RoleMember is the baseline, no-privilege role every accepted
	// invitation receives unless the invitation says otherwise
	RoleMember    Role = 0
	RoleAdmin     Role = 1
	RoleCanInvite Role = 2 // can invite new people to the company
)

type Grant struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	GrantorID *uint64
	Grantor   *User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	UserID    uint64  `gorm:"index:uniq_user_company_role,unique"`
	User      User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CompanyID uint64  `gorm:"index:uniq_user_company_role,unique"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Role      Role    `gorm:"index:uniq_user_company_role,unique"`
}
