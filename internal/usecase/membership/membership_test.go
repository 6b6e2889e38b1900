package membership

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/GeninoServices01/family-api/internal/audit"
	dbpkg "github.com/GeninoServices01/family-api/internal/db"
	"github.com/GeninoServices01/family-api/internal/httperr"
	infraRepo "github.com/GeninoServices01/family-api/internal/infra/repository"
	"github.com/GeninoServices01/family-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := dbpkg.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func newTestEnv(t *testing.T) (*gorm.DB, *infraRepo.FamilyTreeGormRepository, *audit.Dispatcher) {
	t.Helper()
	gdb := newTestDB(t)
	return gdb, infraRepo.NewFamilyTreeGormRepository(gdb), audit.NewDispatcher(audit.New(gdb))
}

var userSeq int

func createUser(t *testing.T, gdb *gorm.DB, gender string) *models.User {
	t.Helper()
	userSeq++

	user := &models.User{
		FullName:     fmt.Sprintf("User %d", userSeq),
		Email:        fmt.Sprintf("user%d@example.com", userSeq),
		PasswordHash: "hash",
		Gender:       gender,
	}
	if err := gdb.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestRegisterChildCreatesPrimaryAdmin(t *testing.T) {
	gdb, repo, dispatcher := newTestEnv(t)
	father := createUser(t, gdb, "male")

	uc := NewRegisterChild(repo, dispatcher)
	child, err := uc.Execute(context.Background(), RegisterChildInput{
		RequesterID: father.ID,
		FullName:    "Kid One",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var admins []models.ChildAdmin
	if err := gdb.Where("child_id = ?", child.ID).Find(&admins).Error; err != nil {
		t.Fatalf("load admins: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("expected exactly one admin, got %d", len(admins))
	}

	admin := admins[0]
	if !admin.IsPrimary {
		t.Fatal("creator edge must be primary")
	}
	if admin.Role != "father" {
		t.Fatalf("expected role father, got %q", admin.Role)
	}
	if admin.Slot != 0 {
		t.Fatalf("expected slot 0, got %d", admin.Slot)
	}
	if admin.UserID != father.ID {
		t.Fatalf("expected user %d, got %d", father.ID, admin.UserID)
	}
}

func TestRegisterChildRoleFollowsGender(t *testing.T) {
	cases := []struct {
		gender string
		want   string
	}{
		{"male", "father"},
		{"female", "mother"},
		{"unspecified", "parent"},
	}

	for _, tc := range cases {
		gdb, repo, dispatcher := newTestEnv(t)
		user := createUser(t, gdb, tc.gender)

		uc := NewRegisterChild(repo, dispatcher)
		child, err := uc.Execute(context.Background(), RegisterChildInput{
			RequesterID: user.ID,
			FullName:    "Kid",
		})
		if err != nil {
			t.Fatalf("gender %q: unexpected error: %v", tc.gender, err)
		}

		var admin models.ChildAdmin
		if err := gdb.Where("child_id = ?", child.ID).First(&admin).Error; err != nil {
			t.Fatalf("gender %q: load admin: %v", tc.gender, err)
		}
		if admin.Role != tc.want {
			t.Errorf("gender %q: role = %q, want %q", tc.gender, admin.Role, tc.want)
		}
	}
}

func TestRegisterChildRequiresFullName(t *testing.T) {
	gdb, repo, dispatcher := newTestEnv(t)
	user := createUser(t, gdb, "male")

	uc := NewRegisterChild(repo, dispatcher)
	_, err := uc.Execute(context.Background(), RegisterChildInput{
		RequesterID: user.ID,
		FullName:    "   ",
	})
	if !httperr.IsBusiness(err, "validation_error") {
		t.Fatalf("expected validation_error, got %v", err)
	}

	var count int64
	gdb.Model(&models.Child{}).Count(&count)
	if count != 0 {
		t.Fatalf("no child should persist, got %d", count)
	}
}

func TestListChildrenOnlyAdminReachable(t *testing.T) {
	gdb, repo, dispatcher := newTestEnv(t)
	a := createUser(t, gdb, "male")
	b := createUser(t, gdb, "female")

	register := NewRegisterChild(repo, dispatcher)
	first, err := register.Execute(context.Background(), RegisterChildInput{RequesterID: a.ID, FullName: "First"})
	if err != nil {
		t.Fatalf("register first: %v", err)
	}
	if _, err := register.Execute(context.Background(), RegisterChildInput{RequesterID: b.ID, FullName: "Second"}); err != nil {
		t.Fatalf("register second: %v", err)
	}

	uc := NewListChildren(repo)
	children, err := uc.Execute(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(children))
	}
	if children[0].ID != first.ID {
		t.Fatalf("expected child %d, got %d", first.ID, children[0].ID)
	}
}

func TestListMembersOrdersPrimaryFirst(t *testing.T) {
	gdb, repo, dispatcher := newTestEnv(t)
	a := createUser(t, gdb, "male")
	b := createUser(t, gdb, "female")

	register := NewRegisterChild(repo, dispatcher)
	child, err := register.Execute(context.Background(), RegisterChildInput{RequesterID: a.ID, FullName: "Kid"})
	if err != nil {
		t.Fatalf("register child: %v", err)
	}

	extra := models.ChildAdmin{ChildID: child.ID, UserID: b.ID, Role: "mother", Slot: 0}
	if err := gdb.Create(&extra).Error; err != nil {
		t.Fatalf("create extra admin: %v", err)
	}

	uc := NewListMembers(repo)
	members, err := uc.Execute(context.Background(), child.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	if !members[0].IsPrimary {
		t.Fatal("primary member must sort first")
	}
	if members[0].User.FullName == "" {
		t.Fatal("member rows must carry the joined user attributes")
	}
}

func TestRevokeMembership(t *testing.T) {
	gdb, repo, dispatcher := newTestEnv(t)
	a := createUser(t, gdb, "male")
	b := createUser(t, gdb, "female")
	outsider := createUser(t, gdb, "unspecified")

	register := NewRegisterChild(repo, dispatcher)
	child, err := register.Execute(context.Background(), RegisterChildInput{RequesterID: a.ID, FullName: "Kid"})
	if err != nil {
		t.Fatalf("register child: %v", err)
	}

	var primary models.ChildAdmin
	if err := gdb.Where("child_id = ? AND user_id = ?", child.ID, a.ID).First(&primary).Error; err != nil {
		t.Fatalf("load primary: %v", err)
	}

	member := models.ChildAdmin{ChildID: child.ID, UserID: b.ID, Role: "mother", Slot: 0}
	if err := gdb.Create(&member).Error; err != nil {
		t.Fatalf("create member: %v", err)
	}

	uc := NewRevokeMembership(repo, dispatcher)
	ctx := context.Background()

	if err := uc.Execute(ctx, outsider.ID, child.ID, member.ID); !httperr.IsBusiness(err, "not_authorized") {
		t.Fatalf("outsider: expected not_authorized, got %v", err)
	}

	if err := uc.Execute(ctx, a.ID, child.ID, 9999); !httperr.IsBusiness(err, "member_not_found") {
		t.Fatalf("missing target: expected member_not_found, got %v", err)
	}

	if err := uc.Execute(ctx, b.ID, child.ID, primary.ID); !httperr.IsBusiness(err, "invariant_violation") {
		t.Fatalf("primary target: expected invariant_violation, got %v", err)
	}

	if err := uc.Execute(ctx, b.ID, child.ID, member.ID); !httperr.IsBusiness(err, "invariant_violation") {
		t.Fatalf("self target: expected invariant_violation, got %v", err)
	}

	if err := uc.Execute(ctx, a.ID, child.ID, member.ID); err != nil {
		t.Fatalf("revoke: unexpected error: %v", err)
	}

	var count int64
	gdb.Model(&models.ChildAdmin{}).Where("id = ?", member.ID).Count(&count)
	if count != 0 {
		t.Fatal("revoked edge should be deleted")
	}
}

func TestRevokeMembershipWrongChildIsNotFound(t *testing.T) {
	gdb, repo, dispatcher := newTestEnv(t)
	a := createUser(t, gdb, "male")
	b := createUser(t, gdb, "female")

	register := NewRegisterChild(repo, dispatcher)
	first, err := register.Execute(context.Background(), RegisterChildInput{RequesterID: a.ID, FullName: "First"})
	if err != nil {
		t.Fatalf("register first: %v", err)
	}
	second, err := register.Execute(context.Background(), RegisterChildInput{RequesterID: a.ID, FullName: "Second"})
	if err != nil {
		t.Fatalf("register second: %v", err)
	}

	member := models.ChildAdmin{ChildID: second.ID, UserID: b.ID, Role: "relative", Slot: 0}
	if err := gdb.Create(&member).Error; err != nil {
		t.Fatalf("create member: %v", err)
	}

	uc := NewRevokeMembership(repo, dispatcher)
	err = uc.Execute(context.Background(), a.ID, first.ID, member.ID)
	if !httperr.IsBusiness(err, "member_not_found") {
		t.Fatalf("expected member_not_found, got %v", err)
	}
}
