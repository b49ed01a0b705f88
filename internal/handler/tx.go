package handler

import (
	"github.com/lijie8778708/DevConnector/internal/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate 在事务内对选中行加锁。
// SQLite 不支持 FOR UPDATE，其写事务本身是串行的
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == database.DriverSQLite {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
