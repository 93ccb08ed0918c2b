package models

import (
	"server/db"
	"server/utils"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

type User struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int
	UpdatedAt   int
	CreatedByID *uint64
	CreatedBy   *User         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Name        string        `gorm:"type:varchar(100)"`
	Email       string        `gorm:"type:varchar(150);index:uniq_email,unique"` // always stored lower-cased
	Password    string        `gorm:"type:varchar(128)"`
	PassSalt    string        `gorm:"type:varchar(200)"`
	TotpToken   string        `gorm:"type:varchar(200)"`
	TotpAlgo    otp.Algorithm `gorm:"type:tinyint(1)"`
	Grants      []Grant       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	// LastSeenAt is the authoritative "last active" time. It is written only
	// by the user.touch background task, never on the request path.
	LastSeenAt int64 `gorm:"index"`
}

const saltSize = 60

func UserCreate(name, email, plainTextPassword string) (u User, err error) {
	u.Email = utils.NormalizeEmail(email)
	u.Name = name
	u.SetPassword(plainTextPassword)
	return u, db.Instance.Create(&u).Error
}

func (u *User) SetPassword(plainTextPassword string) {
	u.PassSalt = utils.RandSalt(saltSize)
	u.Password = utils.Sha512String(plainTextPassword + u.PassSalt)
}

func (u *User) CheckPassword(plainTextPassword string) bool {
	return u.Password == utils.Sha512String(plainTextPassword+u.PassSalt)
}

// CheckTotp returns true when the user has no second factor configured
func (u *User) CheckTotp(code string) bool {
	if u.TotpToken == "" {
		return true
	}
	return totp.Validate(code, u.TotpToken)
}

func UserLogin(email, plainTextPassword string) (u User, success bool) {
	result := db.Instance.Preload("Grants").First(&u, "email = ?", utils.NormalizeEmail(email))
	if result.Error != nil {
		return User{}, false
	}
	if !u.CheckPassword(plainTextPassword) {
		return User{}, false
	}
	return u, true
}

func (u *User) HasRole(required Role) bool {
	for _, grant := range u.Grants {
		if grant.Role == required {
			return true
		}
	}
	return false
}

func (u *User) HasRoles(required []Role) bool {
	for _, role := range required {
		if !u.HasRole(role) {
			return false
		}
	}
	return true
}

// HasCompanyRole checks for any of the given roles scoped to one company
func (u *User) HasCompanyRole(companyID uint64, roles ...Role) bool {
	for _, grant := range u.Grants {
		if grant.CompanyID != companyID {
			continue
		}
		for _, role := range roles {
			if grant.Role == role {
				return true
			}
		}
	}
	return false
}

// CompanyIDs returns the companies the user holds any grant for
func (u *User) CompanyIDs() []uint64 {
	seen := map[uint64]bool{}
	result := []uint64{}
	for _, grant := range u.Grants {
		if seen[grant.CompanyID] {
			continue
		}
		seen[grant.CompanyID] = true
		result = append(result, grant.CompanyID)
	}
	return result
}
