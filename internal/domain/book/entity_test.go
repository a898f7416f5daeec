package book

import (
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestNewBook(t *testing.T) {
	t.Run("正常创建", func(t *testing.T) {
		b, err := NewBook("Dune", "Frank Herbert", strPtr("SF"), intPtr(1965), nil)
		if err != nil {
			t.Fatalf("创建图书失败: %v", err)
		}
		if b.Title != "Dune" || b.Author != "Frank Herbert" {
			t.Errorf("字段错误: %+v", b)
		}
		if b.HasSummary() {
			t.Error("未设置摘要时HasSummary应为false")
		}
	})

	t.Run("书名为空", func(t *testing.T) {
		if _, err := NewBook("", "A", nil, nil, nil); !errors.Is(err, ErrInvalidTitle) {
			t.Errorf("expected=ErrInvalidTitle, got=%v", err)
		}
	})

	t.Run("作者为空", func(t *testing.T) {
		if _, err := NewBook("T", "", nil, nil, nil); !errors.Is(err, ErrInvalidAuthor) {
			t.Errorf("expected=ErrInvalidAuthor, got=%v", err)
		}
	})

	t.Run("年份边界", func(t *testing.T) {
		for _, year := range []int{0, 2100} {
			if _, err := NewBook("T", "A", nil, intPtr(year), nil); err != nil {
				t.Errorf("年份%d应合法: %v", year, err)
			}
		}
		for _, year := range []int{-1, 2101} {
			if _, err := NewBook("T", "A", nil, intPtr(year), nil); !errors.Is(err, ErrInvalidYear) {
				t.Errorf("年份%d应非法, got=%v", year, err)
			}
		}
	})
}

func TestApplyPatch(t *testing.T) {
	t.Run("只修改出现的字段", func(t *testing.T) {
		b, _ := NewBook("T", "A", strPtr("Drama"), intPtr(2000), nil)
		if err := b.ApplyPatch(Patch{YearPublished: intPtr(2001)}); err != nil {
			t.Fatalf("更新失败: %v", err)
		}
		if *b.YearPublished != 2001 {
			t.Errorf("年份未更新: %d", *b.YearPublished)
		}
		if b.Title != "T" || b.Author != "A" || *b.Genre != "Drama" {
			t.Errorf("未出现的字段被修改: %+v", b)
		}
	})

	t.Run("非法年份不修改任何字段", func(t *testing.T) {
		b, _ := NewBook("T", "A", nil, intPtr(2000), nil)
		err := b.ApplyPatch(Patch{Title: strPtr("New"), YearPublished: intPtr(3000)})
		if !errors.Is(err, ErrInvalidYear) {
			t.Fatalf("expected=ErrInvalidYear, got=%v", err)
		}
		if b.Title != "T" {
			t.Errorf("校验失败后书名被修改: %s", b.Title)
		}
	})

	t.Run("空书名被拒绝", func(t *testing.T) {
		b, _ := NewBook("T", "A", nil, nil, nil)
		if err := b.ApplyPatch(Patch{Title: strPtr("")}); !errors.Is(err, ErrInvalidTitle) {
			t.Errorf("expected=ErrInvalidTitle, got=%v", err)
		}
	})
}

func TestPatchHelpers(t *testing.T) {
	if !(Patch{}).IsEmpty() {
		t.Error("空Patch应为IsEmpty")
	}
	if (Patch{Title: strPtr("x")}).ChangesIdentity() {
		t.Error("只改书名不算修改身份")
	}
	if !(Patch{Title: strPtr("x"), Author: strPtr("y")}).ChangesIdentity() {
		t.Error("同时修改书名和作者应为ChangesIdentity")
	}
}

func TestGenreOrDefault(t *testing.T) {
	b, _ := NewBook("T", "A", nil, nil, nil)
	if got := b.GenreOrDefault("Unknown"); got != "Unknown" {
		t.Errorf("got=%s", got)
	}
	b.Genre = strPtr("Poetry")
	if got := b.GenreOrDefault("Unknown"); got != "Poetry" {
		t.Errorf("got=%s", got)
	}
}
