package store

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type testUser struct {
	ID   uint `gorm:"primaryKey"`
	Name string
	Age  int
	Role string
}

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&testUser{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func TestWhere_Pagination(t *testing.T) {
	db := setupTestDB(t)

	users := []testUser{
		{Name: "User1", Age: 20},
		{Name: "User2", Age: 20},
		{Name: "User3", Age: 20},
		{Name: "User4", Age: 20},
		{Name: "User5", Age: 20},
	}
	db.Create(&users)

	tests := []struct {
		name     string
		opts     []Option
		wantLen  int
		wantName string
	}{
		{
			name:     "Limit 2",
			opts:     []Option{WithLimit(2)},
			wantLen:  2,
			wantName: "User1",
		},
		{
			name:     "Offset 2, Limit 2",
			opts:     []Option{WithOffset(2), WithLimit(2)},
			wantLen:  2,
			wantName: "User3",
		},
		{
			name:     "Page 2, Size 2",
			opts:     []Option{WithPage(2, 2)},
			wantLen:  2,
			wantName: "User3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var results []testUser
			whr := NewWhere(tt.opts...)
			if err := whr.Where(db).Find(&results).Error; err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if len(results) != tt.wantLen {
				t.Errorf("got len %d, want %d", len(results), tt.wantLen)
			}
			if len(results) > 0 && results[0].Name != tt.wantName {
				t.Errorf("got first item %s, want %s", results[0].Name, tt.wantName)
			}
		})
	}
}

func TestWhere_Filtering(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&testUser{Name: "Alice", Age: 30, Role: "Admin"})
	db.Create(&testUser{Name: "Bob", Age: 25, Role: "User"})
	db.Create(&testUser{Name: "Charlie", Age: 30, Role: "User"})

	tests := []struct {
		name    string
		opts    []Option
		wantLen int
	}{
		{
			name:    "Filter by Age 30",
			opts:    []Option{WithFilter(map[interface{}]interface{}{"age": 30})},
			wantLen: 2,
		},
		{
			name:    "Filter by Role Admin",
			opts:    []Option{WithFilter(map[interface{}]interface{}{"role": "Admin"})},
			wantLen: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var results []testUser
			whr := NewWhere(tt.opts...)
			if err := whr.Where(db).Find(&results).Error; err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if len(results) != tt.wantLen {
				t.Errorf("got len %d, want %d", len(results), tt.wantLen)
			}
		})
	}

	t.Run("Convenience F", func(t *testing.T) {
		var results []testUser
		whr := F("role", "User")
		whr.Where(db).Find(&results)
		if len(results) != 2 {
			t.Errorf("got len %d, want 2", len(results))
		}
	})
}

func TestWhere_Query(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&testUser{Name: "Alice", Age: 30})
	db.Create(&testUser{Name: "Bob", Age: 25})

	var results []testUser
	whr := NewWhere().Q("age > ?", 28)
	whr.Where(db).Find(&results)

	if len(results) != 1 || results[0].Name != "Alice" {
		t.Errorf("Query failed: got %v", results)
	}
}

func TestWhere_Clauses(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&testUser{Name: "Zack", Age: 20})
	db.Create(&testUser{Name: "Adam", Age: 20})

	var results []testUser
	whr := NewWhere(WithClauses(clause.OrderBy{
		Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "name"}}},
	}))
	whr.Where(db).Find(&results)

	if len(results) != 2 {
		t.Fatal("Expected 2 results")
	}
	if results[0].Name != "Adam" {
		t.Errorf("Expected Adam first, got %s", results[0].Name)
	}
}

func TestWhere_CountThenPaginate(t *testing.T) {
	db := setupTestDB(t)
	for i := 1; i <= 5; i++ {
		db.Create(&testUser{Name: "User", Age: 20 + i})
	}

	whr := NewWhere(WithPage(2, 2), WithQuery("age > ?", 21))
	tx := whr.Conditions(db.Model(&testUser{}))

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 4 {
		t.Errorf("got count %d, want 4", count)
	}

	var results []testUser
	if err := whr.Paginate(tx).Find(&results).Error; err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got len %d, want 2", len(results))
	}
}

func TestWhere_Tenant(t *testing.T) {
	RegisterTenant("tenant_id", func(_ context.Context) string {
		return "tenant-1"
	})

	ctx := context.Background()
	whr := NewWhere()
	whr.T(ctx)

	if val, ok := whr.Filters["tenant_id"]; !ok || val != "tenant-1" {
		t.Errorf("Tenant filter not set correctly: got %v", whr.Filters)
	}
}
