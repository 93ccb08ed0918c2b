package models

import (
	"errors"
	"strings"
	"time"

	"server/db"
	"server/utils"

	"gorm.io/gorm"
)

// Invitation is a pending invite to join a company. The token is single
// use: AcceptedAt flips from nil exactly once, after which redemption is
// rejected.
type Invitation struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	CreatedByID *uint64
	CreatedBy   *User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	CompanyID   uint64  `gorm:"index"`
	Company     Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Email       string  `gorm:"type:varchar(150)"`
	Role        Role    // granted on acceptance; zero value is RoleMember
	Token       string  `gorm:"type:varchar(120);unique"`
	AcceptedAt  *int64
}

const MinPasswordLength = 8

func NewInvitation(createdBy *User, companyID uint64, email string, role Role) (inv Invitation, err error) {
	inv = Invitation{
		CompanyID: companyID,
		Email:     utils.NormalizeEmail(email),
		Role:      role,
		Token:     utils.Rand16BytesToBase62(),
	}
	if createdBy != nil {
		inv.CreatedByID = &createdBy.ID
	}
	return inv, db.Instance.Create(&inv).Error
}

func InvitationByToken(token string) (inv Invitation, err error) {
	err = db.Instance.Preload("Company").Where("token = ?", token).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrNotFound
	}
	return
}

func (inv *Invitation) Accepted() bool {
	return inv.AcceptedAt != nil
}

// AcceptInvitation redeems an invitation token: it provisions the account,
// the talent profile and the role grant, and consumes the token - all in
// one transaction. If any step fails, nothing is kept and the invitation
// stays pending.
//
// The conditional update on accepted_at is the linearization point: two
// concurrent accepts can both load the row, but only one flips the column,
// so the second always gets ErrInviteAccepted.
func AcceptInvitation(token, name, plainTextPassword string) (user User, err error) {
	if len(plainTextPassword) < MinPasswordLength {
		return User{}, ErrWeakPassword
	}
	err = db.Instance.Transaction(func(tx *gorm.DB) error {
		// Claim the token first, before any read, so concurrent accepts
		// serialize on this write instead of deadlocking on a read-lock
		// upgrade. Rolled back if any later step fails.
		now := time.Now().Unix()
		claimed := tx.Model(&Invitation{}).
			Where("token = ? AND accepted_at IS NULL", token).
			Update("accepted_at", now)
		if claimed.Error != nil {
			return claimed.Error
		}
		if claimed.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&Invitation{}).Where("token = ?", token).Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return ErrNotFound
			}
			return ErrInviteAccepted
		}
		var inv Invitation
		if err := tx.Where("token = ?", token).First(&inv).Error; err != nil {
			return err
		}

		email := utils.NormalizeEmail(inv.Email)
		if name == "" {
			name = email
			if at := strings.Index(email, "@"); at > 0 {
				name = email[:at]
			}
		}
		var existing int64
		if err := tx.Model(&User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrEmailTaken
		}
		user = User{Name: name, Email: email, CreatedByID: inv.CreatedByID}
		user.SetPassword(plainTextPassword)
		if err := tx.Create(&user).Error; err != nil {
			if isDuplicateErr(err) {
				return ErrEmailTaken
			}
			return err
		}
		talent := Talent{
			CompanyID: inv.CompanyID,
			UserID:    &user.ID,
			Name:      name,
			Email:     email,
		}
		if err := tx.Create(&talent).Error; err != nil {
			return err
		}
		grant := Grant{
			GrantorID: inv.CreatedByID,
			UserID:    user.ID,
			CompanyID: inv.CompanyID,
			Role:      inv.Role,
		}
		return tx.Create(&grant).Error
	})
	if err != nil {
		return User{}, err
	}
	// Reload so callers see the fresh grant
	db.Instance.Preload("Grants").First(&user)
	return user, nil
}

// isDuplicateErr matches unique constraint violations across the MySQL
// and SQLite drivers
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
