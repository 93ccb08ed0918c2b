package models

import (
	"server/db"
)

func Init() {
	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&Company{})
	db.Instance.AutoMigrate(&Talent{})
	db.Instance.AutoMigrate(&Grant{})
	db.Instance.AutoMigrate(&Invitation{})
	db.Instance.AutoMigrate(&Group{})
	db.Instance.AutoMigrate(&GroupTalent{})
	db.Instance.AutoMigrate(&Shoutout{})
	db.Instance.AutoMigrate(&EmailLog{})
}
