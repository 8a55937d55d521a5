package model

import "testing"

func TestNormalizedEmail(t *testing.T) {
	a := Account{Email: "  User@Example.COM "}
	if got := a.Normalized(); got != "user@example.com" {
		t.Fatalf("Normalized() = %q", got)
	}
}

func TestAccountEqualByNormalizedEmail(t *testing.T) {
	a := Account{Email: "user@example.com", Password: "x"}
	b := Account{Email: " USER@example.com", Password: "y"}
	if !a.Equal(b) {
		t.Fatalf("expected accounts with same normalized email to be equal")
	}
	c := Account{Email: "other@example.com"}
	if a.Equal(c) {
		t.Fatalf("expected different emails to be unequal")
	}
}

func TestHas2FA(t *testing.T) {
	if (Account{Secret: "   "}).Has2FA() {
		t.Fatalf("whitespace secret should not count as 2FA")
	}
	if !(Account{Secret: "JBSWY3DPEHPK3PXP"}).Has2FA() {
		t.Fatalf("expected Has2FA for non-empty secret")
	}
}

func TestGroupMembership(t *testing.T) {
	a := Account{Email: "a@b.com"}

	if !a.AddToGroup("work") {
		t.Fatalf("first add should succeed")
	}
	if a.AddToGroup("work") {
		t.Fatalf("second add should be a no-op")
	}
	if !a.InGroup("work") {
		t.Fatalf("expected membership in work")
	}
	if a.Ungrouped() {
		t.Fatalf("account with a group is not ungrouped")
	}

	if !a.RemoveFromGroup("work") {
		t.Fatalf("remove should succeed")
	}
	if a.RemoveFromGroup("work") {
		t.Fatalf("second remove should be a no-op")
	}
	if !a.Ungrouped() {
		t.Fatalf("expected ungrouped after removal")
	}
}
