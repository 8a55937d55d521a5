package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/model"
)

// ErrDuplicateGroup is returned by Create for an already-taken name.
var ErrDuplicateGroup = errors.New("group already exists")

// GroupService mutates the group list and the membership references the
// accounts hold. Membership is by name, so rename and delete cascade
// across the whole account collection.
type GroupService struct {
	state  *model.State
	events *Notifier
	log    *zap.Logger
}

// NewGroupService constructs the service over the given state.
func NewGroupService(state *model.State, events *Notifier, log *zap.Logger) *GroupService {
	if events == nil {
		events = NewNotifier()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GroupService{state: state, events: events, log: log}
}

// Create appends a new group with a normalized color.
func (s *GroupService) Create(name, color string) (model.Group, error) {
	if s.state.GroupByName(name) != nil {
		return model.Group{}, fmt.Errorf("%w: %s", ErrDuplicateGroup, name)
	}

	group := model.NewGroup(name, color)
	s.state.Groups = append(s.state.Groups, group)

	s.log.Info("created group", zap.String("name", name))
	s.events.emit(Event{Kind: GroupAdded, Group: &group})
	return group, nil
}

// Delete removes the group, strips the membership reference from every
// account, and records a single-slot undo snapshot. A second deletion
// overwrites the previous snapshot.
func (s *GroupService) Delete(name string) (*model.DeletedGroupBackup, bool) {
	index := -1
	for i, g := range s.state.Groups {
		if g.Name == name {
			index = i
			break
		}
	}
	if index < 0 {
		s.log.Warn("group not found", zap.String("name", name))
		return nil, false
	}

	backup := &model.DeletedGroupBackup{
		Group: s.state.Groups[index],
		Index: index,
	}
	for i := range s.state.Accounts {
		if s.state.Accounts[i].RemoveFromGroup(name) {
			backup.AffectedAccounts = append(backup.AffectedAccounts, s.state.Accounts[i].ID)
		}
	}

	s.state.DeletedGroupBackup = backup
	s.state.Groups = append(s.state.Groups[:index], s.state.Groups[index+1:]...)

	s.log.Info("deleted group", zap.String("name", name),
		zap.Int("affected", len(backup.AffectedAccounts)))
	s.events.emit(Event{Kind: GroupDeleted, GroupName: name})
	return backup, true
}

// UndoDelete re-inserts the most recently deleted group at its original
// position and restores membership on the recorded accounts that still
// exist, then clears the snapshot. A no-op when nothing is pending.
func (s *GroupService) UndoDelete() (model.Group, bool) {
	backup := s.state.DeletedGroupBackup
	if backup == nil {
		return model.Group{}, false
	}

	group := backup.Group
	if backup.Index >= len(s.state.Groups) {
		s.state.Groups = append(s.state.Groups, group)
	} else {
		s.state.Groups = append(s.state.Groups[:backup.Index],
			append([]model.Group{group}, s.state.Groups[backup.Index:]...)...)
	}

	for _, id := range backup.AffectedAccounts {
		if a := s.state.AccountByID(id); a != nil {
			a.AddToGroup(group.Name)
		}
	}

	s.state.DeletedGroupBackup = nil
	s.log.Info("restored group", zap.String("name", group.Name))
	s.events.emit(Event{Kind: GroupAdded, Group: &group})
	return group, true
}

// Rename updates the group's name and cascades the rename across every
// account's membership list.
func (s *GroupService) Rename(oldName, newName string) bool {
	group := s.state.GroupByName(oldName)
	if group == nil {
		return false
	}

	group.Name = newName
	for i := range s.state.Accounts {
		if s.state.Accounts[i].RemoveFromGroup(oldName) {
			s.state.Accounts[i].AddToGroup(newName)
		}
	}

	s.log.Info("renamed group", zap.String("from", oldName), zap.String("to", newName))
	s.events.emit(Event{Kind: GroupUpdated, Group: group})
	return true
}

// UpdateColor sets a group's color, normalizing it first.
func (s *GroupService) UpdateColor(name, color string) bool {
	group := s.state.GroupByName(name)
	if group == nil {
		return false
	}
	group.Color = model.NormalizeColor(color)
	s.log.Info("updated group color", zap.String("name", name), zap.String("color", group.Color))
	s.events.emit(Event{Kind: GroupUpdated, Group: group})
	return true
}

// Reorder rebuilds the group list to match the given name ordering. Any
// existing group omitted from the order is appended at the end rather
// than dropped.
func (s *GroupService) Reorder(names []string) {
	byName := make(map[string]model.Group, len(s.state.Groups))
	for _, g := range s.state.Groups {
		byName[g.Name] = g
	}

	reordered := make([]model.Group, 0, len(s.state.Groups))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if g, ok := byName[name]; ok && !seen[name] {
			reordered = append(reordered, g)
			seen[name] = true
		}
	}
	for _, g := range s.state.Groups {
		if !seen[g.Name] {
			reordered = append(reordered, g)
		}
	}

	s.state.Groups = reordered
	s.log.Info("reordered groups", zap.Strings("order", names))
	s.events.emit(Event{Kind: GroupsReordered})
}

// AddAccountsToGroup adds the accounts with the given ids to a group and
// returns how many were not already members.
func (s *GroupService) AddAccountsToGroup(ids []int, name string) int {
	count := 0
	for _, id := range ids {
		if a := s.state.AccountByID(id); a != nil && a.AddToGroup(name) {
			count++
		}
	}
	s.log.Info("added accounts to group", zap.String("name", name), zap.Int("count", count))
	return count
}

// RemoveAccountsFromGroup removes the accounts with the given ids from a
// group and returns how many actually held a membership.
func (s *GroupService) RemoveAccountsFromGroup(ids []int, name string) int {
	count := 0
	for _, id := range ids {
		if a := s.state.AccountByID(id); a != nil && a.RemoveFromGroup(name) {
			count++
		}
	}
	s.log.Info("removed accounts from group", zap.String("name", name), zap.Int("count", count))
	return count
}

// Groups returns a copy of the group list in display order.
func (s *GroupService) Groups() []model.Group {
	out := make([]model.Group, len(s.state.Groups))
	copy(out, s.state.Groups)
	return out
}
