package model

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// DeletedGroupBackup is the single undo slot for group deletion. It
// captures the group, its original list position, and the ids of every
// account that held a membership reference at deletion time.
type DeletedGroupBackup struct {
	Group            Group
	Index            int
	AffectedAccounts []int
}

// State aggregates everything one library persists: live accounts, trash,
// groups, the id counter, and the UI language. The trailing fields are
// transient UI state and never serialized.
type State struct {
	Accounts      []Account `json:"accounts"`
	Trash         []Account `json:"trash"`
	Groups        []Group   `json:"groups"`
	NextIDCounter int       `json:"next_id"`
	Language      string    `json:"language"`

	// Transient, not persisted.
	CurrentFilter      string              `json:"-"`
	SelectedRows       mapset.Set[int]     `json:"-"`
	ShowFullInfo       bool                `json:"-"`
	DeletedGroupBackup *DeletedGroupBackup `json:"-"`
}

// NewState returns an empty state with the id counter at 1.
func NewState() *State {
	return &State{
		NextIDCounter: 1,
		Language:      "en",
		CurrentFilter: "all",
		SelectedRows:  mapset.NewSet[int](),
	}
}

// Normalize repairs invariants after a load: transient fields are
// re-initialized, group colors are migrated, and the id counter is bumped
// past the highest id found in accounts or trash.
func (s *State) Normalize() {
	if s.SelectedRows == nil {
		s.SelectedRows = mapset.NewSet[int]()
	}
	if s.CurrentFilter == "" {
		s.CurrentFilter = "all"
	}
	if s.Language == "" {
		s.Language = "en"
	}
	for i := range s.Groups {
		s.Groups[i].Color = NormalizeColor(s.Groups[i].Color)
	}
	if s.NextIDCounter < 1 {
		s.NextIDCounter = 1
	}
	for _, a := range s.Accounts {
		if a.ID >= s.NextIDCounter {
			s.NextIDCounter = a.ID + 1
		}
	}
	for _, a := range s.Trash {
		if a.ID >= s.NextIDCounter {
			s.NextIDCounter = a.ID + 1
		}
	}
}

// NextID returns the current counter value and increments it. Issued ids
// are never reused, even after delete and restore.
func (s *State) NextID() int {
	id := s.NextIDCounter
	s.NextIDCounter++
	return id
}

// ExistingEmails returns the set of normalized emails over live accounts.
func (s *State) ExistingEmails() mapset.Set[string] {
	emails := mapset.NewSet[string]()
	for _, a := range s.Accounts {
		emails.Add(a.Normalized())
	}
	return emails
}

// IsDuplicateEmail reports whether a live account already claims the email.
func (s *State) IsDuplicateEmail(email string) bool {
	probe := Account{Email: email}
	return s.ExistingEmails().Contains(probe.Normalized())
}

// AccountByID returns a pointer into the live list, or nil.
func (s *State) AccountByID(id int) *Account {
	for i := range s.Accounts {
		if s.Accounts[i].ID == id {
			return &s.Accounts[i]
		}
	}
	return nil
}

// AccountByEmail finds a live account by normalized email, or nil.
func (s *State) AccountByEmail(email string) *Account {
	probe := Account{Email: email}
	normalized := probe.Normalized()
	for i := range s.Accounts {
		if s.Accounts[i].Normalized() == normalized {
			return &s.Accounts[i]
		}
	}
	return nil
}

// AccountsInGroup returns the live accounts holding a membership reference
// to the named group, in list order.
func (s *State) AccountsInGroup(name string) []Account {
	var out []Account
	for _, a := range s.Accounts {
		if a.InGroup(name) {
			out = append(out, a)
		}
	}
	return out
}

// UngroupedAccounts returns the live accounts with no group membership.
func (s *State) UngroupedAccounts() []Account {
	var out []Account
	for _, a := range s.Accounts {
		if a.Ungrouped() {
			out = append(out, a)
		}
	}
	return out
}

// GroupByName returns a pointer into the group list, or nil.
func (s *State) GroupByName(name string) *Group {
	for i := range s.Groups {
		if s.Groups[i].Name == name {
			return &s.Groups[i]
		}
	}
	return nil
}
