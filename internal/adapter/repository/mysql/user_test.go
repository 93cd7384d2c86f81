package mysql

import (
	"context"
	"errors"
	"testing"

	userDomain "creditsea-backend/internal/domain/user"
	"creditsea-backend/pkg/id"

	"gorm.io/gorm"
)

func makeUser(userID, email string, role userDomain.Role) *userDomain.User {
	return &userDomain.User{
		UserID:   userID,
		Name:     "Test User",
		Email:    email,
		Password: "$2a$10$notarealhashnotarealhashnotare",
		Phone:    "+911234567890",
		Role:     role,
	}
}

func TestUserCreateAndLookups(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	userID := id.NewID32()
	u := makeUser(userID, "alice@example.com", userDomain.RoleUser)
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	byID, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if byID.Email != "alice@example.com" {
		t.Errorf("unexpected user: %+v", byID)
	}

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.UserID != userID {
		t.Errorf("unexpected user: %+v", byEmail)
	}
}

func TestUserNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if _, err := repo.GetByUserID(ctx, "00000000000000000000000000000000"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUserDuplicateEmailRejected(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, makeUser(id.NewID32(), "dup@example.com", userDomain.RoleUser)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, makeUser(id.NewID32(), "dup@example.com", userDomain.RoleUser)); err == nil {
		t.Fatalf("expected unique-email violation")
	}
}

func TestUserSaveRoleChange(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	userID := id.NewID32()
	u := makeUser(userID, "bob@example.com", userDomain.RoleUser)
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	u.Role = userDomain.RoleVerifier
	if err := repo.Save(ctx, u); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got.Role != userDomain.RoleVerifier {
		t.Errorf("role not persisted, got=%s", got.Role)
	}
}

func TestUserListAndCount(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if n, err := repo.Count(ctx); err != nil || n != 0 {
		t.Fatalf("Count on empty table: n=%d err=%v", n, err)
	}

	seeds := []*userDomain.User{
		makeUser(id.NewID32(), "u1@example.com", userDomain.RoleUser),
		makeUser(id.NewID32(), "a1@example.com", userDomain.RoleAdmin),
		makeUser(id.NewID32(), "v1@example.com", userDomain.RoleVerifier),
	}
	for _, u := range seeds {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 users, got %d", len(got))
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count got=%d want=3", n)
	}
}
