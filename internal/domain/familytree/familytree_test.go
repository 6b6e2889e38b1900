package familytree

import (
	"testing"
	"time"

	"github.com/GeninoServices01/family-api/internal/models"
)

func TestRoleForGender(t *testing.T) {
	cases := []struct {
		gender string
		want   Role
	}{
		{"male", RoleFather},
		{"female", RoleMother},
		{"unspecified", RoleParent},
		{"", RoleParent},
	}

	for _, tc := range cases {
		if got := RoleForGender(tc.gender); got != tc.want {
			t.Errorf("RoleForGender(%q) = %q, want %q", tc.gender, got, tc.want)
		}
	}
}

func TestCanInvite(t *testing.T) {
	if !CanInvite("father") || !CanInvite("mother") {
		t.Fatal("expected father and mother to be allowed to invite")
	}
	if CanInvite("relative") || CanInvite("parent") || CanInvite("") {
		t.Fatal("expected non-parental roles to be denied")
	}
}

func TestInvitationExpiry(t *testing.T) {
	now := time.Now()

	pending := &models.ChildInvitation{ExpiresAt: now.Add(time.Hour)}
	if InvitationExpired(pending, now) {
		t.Fatal("future expiry reported as expired")
	}
	if !InvitationActive(pending, now) {
		t.Fatal("pending invitation reported inactive")
	}

	expired := &models.ChildInvitation{ExpiresAt: now.Add(-time.Minute)}
	if !InvitationExpired(expired, now) {
		t.Fatal("past expiry not reported as expired")
	}
	if InvitationActive(expired, now) {
		t.Fatal("expired invitation reported active")
	}

	accepted := &models.ChildInvitation{ExpiresAt: now.Add(time.Hour), Accepted: true}
	if InvitationActive(accepted, now) {
		t.Fatal("accepted invitation reported active")
	}

	boundary := &models.ChildInvitation{ExpiresAt: now}
	if !InvitationExpired(boundary, now) {
		t.Fatal("expiry at exactly now should count as expired")
	}
}

func TestNewInvitationToken(t *testing.T) {
	a, err := NewInvitationToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != TokenBytes*2 {
		t.Fatalf("expected %d hex chars, got %d", TokenBytes*2, len(a))
	}

	b, err := NewInvitationToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatal("two tokens should never collide")
	}
}

func TestAcceptedRoleFallsBackToRelative(t *testing.T) {
	inv := &models.ChildInvitation{RelationType: "mother"}
	if got := AcceptedRole(inv); got != "mother" {
		t.Fatalf("got %q, want mother", got)
	}

	blank := &models.ChildInvitation{}
	if got := AcceptedRole(blank); got != string(RoleRelative) {
		t.Fatalf("got %q, want relative", got)
	}
}
