package sqlstore

import (
	"context"

	"gorm.io/gorm"
)

// txKey 事务DB在Context中的key（私有类型，避免与其他包冲突）
type txKey struct{}

// TxManager 事务管理器
// 教学要点:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. 支持嵌套事务(GORM自动使用Savepoint)
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// 教学要点:
// 1. fn函数内的所有Repository操作都会在同一事务中执行
// 2. fn返回error时自动ROLLBACK,返回nil时自动COMMIT
//
// 使用示例:
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    if _, err := bookRepo.FindByID(ctx, bookID); err != nil {
//	        return err // 图书不存在,回滚
//	    }
//	    return reviewRepo.Create(ctx, r)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// 已在事务中时复用外层事务(GORM对嵌套Transaction使用Savepoint)
	db := m.db
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		db = tx
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 将事务DB注入到Context中
		// Repository的getDB方法会从context提取事务DB
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
