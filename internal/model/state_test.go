package model

import "testing"

func TestNextIDMonotonic(t *testing.T) {
	s := NewState()
	first := s.NextID()
	second := s.NextID()
	if first != 1 || second != 2 {
		t.Fatalf("NextID sequence = %d, %d; want 1, 2", first, second)
	}
	if s.NextIDCounter != 3 {
		t.Fatalf("counter = %d; want 3", s.NextIDCounter)
	}
}

func TestNormalizeBumpsCounterPastTrash(t *testing.T) {
	s := NewState()
	s.Accounts = []Account{{Email: "a@b.com", ID: 4}}
	s.Trash = []Account{{Email: "t@b.com", ID: 9}}
	s.NextIDCounter = 2
	s.Normalize()
	if s.NextIDCounter != 10 {
		t.Fatalf("counter = %d; want 10", s.NextIDCounter)
	}
}

func TestNormalizeMigratesGroupColors(t *testing.T) {
	s := NewState()
	s.Groups = []Group{{Name: "g", Color: "\U0001F534"}, {Name: "h", Color: "bogus"}}
	s.Normalize()
	if s.Groups[0].Color != "red" || s.Groups[1].Color != "red" {
		t.Fatalf("colors = %q, %q; want red, red", s.Groups[0].Color, s.Groups[1].Color)
	}
}

func TestStateLookups(t *testing.T) {
	s := NewState()
	s.Accounts = []Account{
		{Email: "a@b.com", ID: 1, Groups: []string{"work"}},
		{Email: "c@d.com", ID: 2},
	}

	if s.AccountByID(2) == nil || s.AccountByID(2).Email != "c@d.com" {
		t.Fatalf("AccountByID(2) lookup failed")
	}
	if s.AccountByID(99) != nil {
		t.Fatalf("expected nil for unknown id")
	}
	if s.AccountByEmail(" A@B.COM ") == nil {
		t.Fatalf("AccountByEmail should normalize before comparing")
	}
	if !s.IsDuplicateEmail("A@b.com") {
		t.Fatalf("expected duplicate for existing email")
	}
	if s.IsDuplicateEmail("new@b.com") {
		t.Fatalf("unexpected duplicate for novel email")
	}
	if got := s.AccountsInGroup("work"); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("AccountsInGroup = %v", got)
	}
	if got := s.UngroupedAccounts(); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("UngroupedAccounts = %v", got)
	}
}
