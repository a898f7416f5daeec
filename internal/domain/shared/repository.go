package shared

import (
	"context"
)

// Repository 通用CRUD仓储接口
// 设计说明:
// 1. 各聚合的仓储接口嵌入Repository[T]，再补充实体特有的查询
// 2. 实体不存在时FindByID/Update返回该聚合的NotFound错误
// 3. Delete用布尔值表示是否删除了记录，记录不存在不视为错误
type Repository[T any] interface {
	// FindByID 根据ID查找
	FindByID(ctx context.Context, id uint) (*T, error)

	// List 偏移量分页查询，按id升序
	List(ctx context.Context, skip, limit int) ([]*T, error)

	// Create 创建实体，回填ID与时间戳
	Create(ctx context.Context, entity *T) error

	// Update 按ID更新实体的全部字段
	Update(ctx context.Context, entity *T) error

	// Delete 根据ID删除，返回是否删除了记录
	Delete(ctx context.Context, id uint) (bool, error)
}

// TxManager 事务管理器接口
// fn内通过ctx调用的所有仓储方法都在同一事务中执行
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
