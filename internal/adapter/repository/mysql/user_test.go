package mysql

import (
	"context"
	"errors"
	"testing"

	domain "estate-access-service/internal/domain/user"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openUserTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestUserCreateAndGetByEmail(t *testing.T) {
	db := openUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &domain.User{
		FullName:     "Jane Wanjiku",
		Email:        "jane@example.com",
		PasswordHash: "x",
		Role:         domain.RoleAdmin,
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != u.ID || got.Role != domain.RoleAdmin {
		t.Errorf("unexpected user: %+v", got)
	}

	if _, err := repo.GetByEmail(ctx, "ghost@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

func TestUserUniqueEmail(t *testing.T) {
	db := openUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	a := &domain.User{FullName: "A", Email: "dup@example.com", PasswordHash: "x", Role: domain.RoleResident}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	b := &domain.User{FullName: "B", Email: "dup@example.com", PasswordHash: "x", Role: domain.RoleResident}
	if err := repo.Create(ctx, b); err == nil {
		t.Fatalf("duplicate email accepted")
	}
}
