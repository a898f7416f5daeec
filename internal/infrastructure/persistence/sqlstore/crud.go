package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// crudRepository 通用CRUD仓储实现
// 设计说明:
// 1. E是领域实体,M是GORM模型,通过两个转换函数互转
// 2. 实现shared.Repository[E],图书/评论仓储嵌入后只补充特有查询
// 3. 所有方法都通过getDB(ctx)参与外层事务
type crudRepository[E any, M any] struct {
	db       *gorm.DB
	toEntity func(*M) *E
	toModel  func(*E) *M
	idOf     func(*E) uint
	notFound error  // 记录不存在时返回的领域错误
	resource string // 错误提示中的资源名称
}

// FindByID 根据ID查找
func (r *crudRepository[E, M]) FindByID(ctx context.Context, id uint) (*E, error) {
	var model M
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound
		}
		return nil, dbError(err, "查询"+r.resource+"失败")
	}
	return r.toEntity(&model), nil
}

// List 偏移量分页,按id升序
func (r *crudRepository[E, M]) List(ctx context.Context, skip, limit int) ([]*E, error) {
	return r.find(getDB(ctx, r.db), skip, limit)
}

// Create 创建实体,回填ID和时间戳
func (r *crudRepository[E, M]) Create(ctx context.Context, entity *E) error {
	// 1. 领域实体 → GORM模型
	model := r.toModel(entity)

	// 2. 插入数据库
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return translateWriteError(err, "创建"+r.resource+"失败")
	}

	// 3. 回填自增ID与时间戳
	*entity = *r.toEntity(model)
	return nil
}

// Update 按ID更新全部字段(created_at除外)
// 记录不存在时返回notFound,不会插入新记录
func (r *crudRepository[E, M]) Update(ctx context.Context, entity *E) error {
	db := getDB(ctx, r.db)
	id := r.idOf(entity)

	// 1. 确认记录存在
	var probe M
	if err := db.Select("id").First(&probe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.notFound
		}
		return dbError(err, "查询"+r.resource+"失败")
	}

	// 2. 更新所有字段(包括nil/零值)
	model := r.toModel(entity)
	if err := db.Model(model).Select("*").Omit("id", "created_at").Updates(model).Error; err != nil {
		return translateWriteError(err, "更新"+r.resource+"失败")
	}

	// 3. 重新读取,保证返回的是持久化后的状态
	var saved M
	if err := db.First(&saved, id).Error; err != nil {
		return dbError(err, "查询"+r.resource+"失败")
	}
	*entity = *r.toEntity(&saved)
	return nil
}

// Delete 物理删除,返回是否删除了记录
func (r *crudRepository[E, M]) Delete(ctx context.Context, id uint) (bool, error) {
	result := getDB(ctx, r.db).Delete(new(M), id)
	if result.Error != nil {
		return false, dbError(result.Error, "删除"+r.resource+"失败")
	}
	return result.RowsAffected > 0, nil
}

// find 在query基础上按id升序分页并转换
func (r *crudRepository[E, M]) find(query *gorm.DB, skip, limit int) ([]*E, error) {
	var models []M
	if err := paginate(query.Order("id ASC"), skip, limit).Find(&models).Error; err != nil {
		return nil, dbError(err, "查询"+r.resource+"列表失败")
	}
	return r.toEntities(models), nil
}

func (r *crudRepository[E, M]) toEntities(models []M) []*E {
	entities := make([]*E, len(models))
	for i := range models {
		entities[i] = r.toEntity(&models[i])
	}
	return entities
}

// paginate 偏移量分页
// limit<=0表示不限制条数
func paginate(query *gorm.DB, skip, limit int) *gorm.DB {
	if skip > 0 {
		query = query.Offset(skip)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	return query
}
