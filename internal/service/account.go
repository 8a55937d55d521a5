// Package service implements the CRUD layer over the in-memory state.
// All mutations emit notification events for registered observers.
package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/model"
)

// ErrDuplicateAccount is returned by Add when a live account already
// claims the same normalized email.
var ErrDuplicateAccount = errors.New("account already exists")

// Duplicate pairs an incoming account with the live record it collides
// with and that record's position in the live list.
type Duplicate struct {
	New      model.Account
	Existing model.Account
	Index    int
}

// AccountService mutates the live and trash account lists.
type AccountService struct {
	state  *model.State
	events *Notifier
	log    *zap.Logger
}

// NewAccountService constructs the service over the given state.
func NewAccountService(state *model.State, events *Notifier, log *zap.Logger) *AccountService {
	if events == nil {
		events = NewNotifier()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountService{state: state, events: events, log: log}
}

// Add inserts an account into the live list, assigning the next id when
// the account does not already carry one. With checkDuplicate set, a
// normalized-email collision returns ErrDuplicateAccount.
func (s *AccountService) Add(account model.Account, checkDuplicate bool) (model.Account, error) {
	if checkDuplicate && s.state.IsDuplicateEmail(account.Email) {
		return model.Account{}, fmt.Errorf("%w: %s", ErrDuplicateAccount, account.Normalized())
	}

	if account.ID == 0 {
		account.ID = s.state.NextID()
	}
	s.state.Accounts = append(s.state.Accounts, account)

	s.log.Info("added account", zap.String("email", account.Normalized()))
	s.events.emit(Event{Kind: AccountAdded, Account: &account})
	return account, nil
}

// Update replaces the live record sharing the account's id. A missing id
// is a logged no-op, not a failure.
func (s *AccountService) Update(account model.Account) bool {
	for i := range s.state.Accounts {
		if s.state.Accounts[i].ID == account.ID {
			s.state.Accounts[i] = account
			s.log.Info("updated account", zap.String("email", account.Normalized()))
			s.events.emit(Event{Kind: AccountUpdated, Account: &account})
			return true
		}
	}
	s.log.Warn("account not found for update", zap.Int("id", account.ID))
	return false
}

// Delete removes the live record by id. With moveToTrash it is appended
// unchanged to the trash list; otherwise it is discarded.
func (s *AccountService) Delete(id int, moveToTrash bool) (model.Account, bool) {
	for i := range s.state.Accounts {
		if s.state.Accounts[i].ID != id {
			continue
		}
		deleted := s.state.Accounts[i]
		s.state.Accounts = append(s.state.Accounts[:i], s.state.Accounts[i+1:]...)

		if moveToTrash {
			s.state.Trash = append(s.state.Trash, deleted)
			s.log.Info("moved to trash", zap.String("email", deleted.Normalized()))
		} else {
			s.log.Info("permanently deleted", zap.String("email", deleted.Normalized()))
		}

		s.events.emit(Event{Kind: AccountDeleted, AccountID: id})
		return deleted, true
	}

	s.log.Warn("account not found for deletion", zap.Int("id", id))
	return model.Account{}, false
}

// DeleteByEmail resolves the id for a normalized email and deletes it.
func (s *AccountService) DeleteByEmail(email string, moveToTrash bool) (model.Account, bool) {
	if a := s.state.AccountByEmail(email); a != nil && a.ID != 0 {
		return s.Delete(a.ID, moveToTrash)
	}
	return model.Account{}, false
}

// RestoreFromTrash moves a record back to the live list, keeping its id.
func (s *AccountService) RestoreFromTrash(id int) (model.Account, bool) {
	for i := range s.state.Trash {
		if s.state.Trash[i].ID != id {
			continue
		}
		restored := s.state.Trash[i]
		s.state.Trash = append(s.state.Trash[:i], s.state.Trash[i+1:]...)
		s.state.Accounts = append(s.state.Accounts, restored)

		s.log.Info("restored from trash", zap.String("email", restored.Normalized()))
		s.events.emit(Event{Kind: AccountRestored, Account: &restored})
		return restored, true
	}

	s.log.Warn("account not found in trash", zap.Int("id", id))
	return model.Account{}, false
}

// DeleteFromTrash permanently removes a single trashed record.
func (s *AccountService) DeleteFromTrash(id int) (model.Account, bool) {
	for i := range s.state.Trash {
		if s.state.Trash[i].ID != id {
			continue
		}
		deleted := s.state.Trash[i]
		s.state.Trash = append(s.state.Trash[:i], s.state.Trash[i+1:]...)
		s.log.Info("permanently deleted from trash", zap.String("email", deleted.Normalized()))
		return deleted, true
	}
	return model.Account{}, false
}

// EmptyTrash permanently clears the trash and returns the removed count.
func (s *AccountService) EmptyTrash() int {
	count := len(s.state.Trash)
	s.state.Trash = nil
	s.log.Info("emptied trash", zap.Int("count", count))
	return count
}

// FindByEmail returns the live account for a normalized email, or nil.
func (s *AccountService) FindByEmail(email string) *model.Account {
	return s.state.AccountByEmail(email)
}

// FindByID returns the live account for an id, or nil.
func (s *AccountService) FindByID(id int) *model.Account {
	return s.state.AccountByID(id)
}

// FindDuplicates returns, for a batch of incoming accounts, those that
// collide with live accounts by normalized email, paired with the
// existing record and its position. Feeds the conflict-resolution flow.
func (s *AccountService) FindDuplicates(accounts []model.Account) []Duplicate {
	var duplicates []Duplicate
	for _, incoming := range accounts {
		for i, existing := range s.state.Accounts {
			if incoming.Normalized() == existing.Normalized() {
				duplicates = append(duplicates, Duplicate{New: incoming, Existing: existing, Index: i})
				break
			}
		}
	}
	return duplicates
}

// ClearAll bulk-deletes every live account, optionally preserving them
// in trash, and returns the count.
func (s *AccountService) ClearAll(moveToTrash bool) int {
	count := len(s.state.Accounts)
	if moveToTrash {
		s.state.Trash = append(s.state.Trash, s.state.Accounts...)
	}
	s.state.Accounts = nil
	s.log.Info("cleared all accounts", zap.Int("count", count))
	return count
}

// AccountCount returns the number of live accounts.
func (s *AccountService) AccountCount() int { return len(s.state.Accounts) }

// TrashCount returns the number of trashed accounts.
func (s *AccountService) TrashCount() int { return len(s.state.Trash) }
