package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Transaction":
		return db.AutoMigrate(Transaction{})

	case "TransactionRevision":
		return db.AutoMigrate(TransactionRevision{})

	case "User":
		return db.AutoMigrate(User{})
	}
	return nil
}

// AutoMigrateAll migrates every table the service owns.
// AutoMigrateAll 迁移服务拥有的所有表
func AutoMigrateAll(db *gorm.DB) error {
	for _, key := range []string{"Transaction", "TransactionRevision", "User"} {
		if err := AutoMigrate(db, key); err != nil {
			return err
		}
	}
	return nil
}
