package db

import (
	"server/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Instance *gorm.DB

func Init() {
	var (
		db  *gorm.DB
		err error
	)
	if config.MYSQL_DSN != "" {
		db, err = gorm.Open(mysql.Open(config.MYSQL_DSN), &gorm.Config{
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
		})
	} else {
		file := config.SQLITE_FILE
		if file == "" {
			file = "server.db"
		}
		db, err = gorm.Open(sqlite.Open(file), &gorm.Config{
			SkipDefaultTransaction: true,
		})
	}
	if err != nil || db == nil {
		panic(err)
	}
	Instance = db
}
