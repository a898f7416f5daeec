package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 每个方法直接委托给Repository,业务编排放在application层
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	GetBook(ctx context.Context, id uint) (*Book, error)
	ListBooks(ctx context.Context, skip, limit int) ([]*Book, error)
	CreateBook(ctx context.Context, book *Book) error
	UpdateBook(ctx context.Context, book *Book) error
	DeleteBook(ctx context.Context, id uint) (bool, error)
	FindByTitleAndAuthor(ctx context.Context, title, author string) (*Book, error)
	FindByGenre(ctx context.Context, genre string, skip, limit int) ([]*Book, error)
	FindByYear(ctx context.Context, year int, skip, limit int) ([]*Book, error)
	FindRecent(ctx context.Context, limit int) ([]*Book, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListBooks(ctx context.Context, skip, limit int) ([]*Book, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *service) CreateBook(ctx context.Context, book *Book) error {
	return s.repo.Create(ctx, book)
}

func (s *service) UpdateBook(ctx context.Context, book *Book) error {
	return s.repo.Update(ctx, book)
}

func (s *service) DeleteBook(ctx context.Context, id uint) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *service) FindByTitleAndAuthor(ctx context.Context, title, author string) (*Book, error) {
	return s.repo.FindByTitleAndAuthor(ctx, title, author)
}

func (s *service) FindByGenre(ctx context.Context, genre string, skip, limit int) ([]*Book, error) {
	return s.repo.FindByGenre(ctx, genre, skip, limit)
}

func (s *service) FindByYear(ctx context.Context, year int, skip, limit int) ([]*Book, error) {
	return s.repo.FindByYear(ctx, year, skip, limit)
}

func (s *service) FindRecent(ctx context.Context, limit int) ([]*Book, error) {
	return s.repo.FindRecent(ctx, limit)
}
