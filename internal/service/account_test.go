package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/model"
)

func newAccountService(t *testing.T) (*AccountService, *model.State, *[]Event) {
	t.Helper()
	state := model.NewState()
	events := NewNotifier()
	var seen []Event
	events.Subscribe(func(e Event) { seen = append(seen, e) })
	return NewAccountService(state, events, nil), state, &seen
}

func TestAddAssignsMonotonicIDs(t *testing.T) {
	svc, state, _ := newAccountService(t)

	a, err := svc.Add(model.Account{Email: "a@b.com"}, true)
	require.NoError(t, err)
	b, err := svc.Add(model.Account{Email: "c@d.com"}, true)
	require.NoError(t, err)

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, 3, state.NextIDCounter)
}

func TestAddKeepsExistingID(t *testing.T) {
	svc, state, _ := newAccountService(t)
	state.NextIDCounter = 10

	a, err := svc.Add(model.Account{Email: "a@b.com", ID: 7}, true)
	require.NoError(t, err)
	assert.Equal(t, 7, a.ID)
	assert.Equal(t, 10, state.NextIDCounter, "counter untouched when id pre-assigned")
}

func TestAddRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAccountService(t)

	_, err := svc.Add(model.Account{Email: "user@example.com"}, true)
	require.NoError(t, err)

	_, err = svc.Add(model.Account{Email: " USER@example.com "}, true)
	require.ErrorIs(t, err, ErrDuplicateAccount)

	// Duplicate checking can be disabled by the caller.
	dup, err := svc.Add(model.Account{Email: "user@example.com"}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, dup.ID)
}

func TestUpdateReplacesByID(t *testing.T) {
	svc, state, _ := newAccountService(t)
	a, _ := svc.Add(model.Account{Email: "a@b.com"}, true)

	a.Notes = "updated"
	assert.True(t, svc.Update(a))
	assert.Equal(t, "updated", state.Accounts[0].Notes)

	assert.False(t, svc.Update(model.Account{ID: 99}), "unknown id is a no-op")
}

func TestDeleteMovesToTrash(t *testing.T) {
	svc, state, _ := newAccountService(t)
	a, _ := svc.Add(model.Account{Email: "a@b.com"}, true)

	deleted, ok := svc.Delete(a.ID, true)
	require.True(t, ok)
	assert.Equal(t, a.Email, deleted.Email)
	assert.Empty(t, state.Accounts)
	require.Len(t, state.Trash, 1)
	assert.Equal(t, a.ID, state.Trash[0].ID)

	_, ok = svc.Delete(a.ID, true)
	assert.False(t, ok, "second delete is a no-op")
}

func TestDeletePermanent(t *testing.T) {
	svc, state, _ := newAccountService(t)
	a, _ := svc.Add(model.Account{Email: "a@b.com"}, true)

	_, ok := svc.Delete(a.ID, false)
	require.True(t, ok)
	assert.Empty(t, state.Accounts)
	assert.Empty(t, state.Trash)
}

func TestRestorePreservesID(t *testing.T) {
	svc, state, _ := newAccountService(t)
	a, _ := svc.Add(model.Account{Email: "a@b.com"}, true)
	svc.Delete(a.ID, true)

	restored, ok := svc.RestoreFromTrash(a.ID)
	require.True(t, ok)
	assert.Equal(t, a.ID, restored.ID)
	assert.Empty(t, state.Trash)

	// The id is never reissued even after the delete/restore cycle.
	b, _ := svc.Add(model.Account{Email: "c@d.com"}, true)
	assert.Equal(t, 2, b.ID)

	_, ok = svc.RestoreFromTrash(99)
	assert.False(t, ok)
}

func TestEmptyTrash(t *testing.T) {
	svc, state, _ := newAccountService(t)
	for _, email := range []string{"a@b.com", "c@d.com"} {
		a, _ := svc.Add(model.Account{Email: email}, true)
		svc.Delete(a.ID, true)
	}

	assert.Equal(t, 2, svc.EmptyTrash())
	assert.Empty(t, state.Trash)
	assert.Equal(t, 0, svc.EmptyTrash())
}

func TestDeleteFromTrash(t *testing.T) {
	svc, state, _ := newAccountService(t)
	a, _ := svc.Add(model.Account{Email: "a@b.com"}, true)
	svc.Delete(a.ID, true)

	_, ok := svc.DeleteFromTrash(a.ID)
	require.True(t, ok)
	assert.Empty(t, state.Trash)

	_, ok = svc.DeleteFromTrash(a.ID)
	assert.False(t, ok)
}

func TestFindDuplicates(t *testing.T) {
	svc, _, _ := newAccountService(t)
	svc.Add(model.Account{Email: "first@example.com"}, true)
	svc.Add(model.Account{Email: "second@example.com"}, true)

	batch := []model.Account{
		{Email: " SECOND@example.com"},
		{Email: "novel@example.com"},
	}
	dups := svc.FindDuplicates(batch)
	require.Len(t, dups, 1)
	assert.Equal(t, "second@example.com", dups[0].Existing.Email)
	assert.Equal(t, 1, dups[0].Index)
	assert.Equal(t, " SECOND@example.com", dups[0].New.Email)
}

func TestClearAll(t *testing.T) {
	svc, state, _ := newAccountService(t)
	svc.Add(model.Account{Email: "a@b.com"}, true)
	svc.Add(model.Account{Email: "c@d.com"}, true)

	assert.Equal(t, 2, svc.ClearAll(true))
	assert.Empty(t, state.Accounts)
	assert.Len(t, state.Trash, 2)

	svc.Add(model.Account{Email: "e@f.com"}, true)
	assert.Equal(t, 1, svc.ClearAll(false))
	assert.Len(t, state.Trash, 2, "permanent clear must not grow trash")
}

func TestAccountEventsEmitted(t *testing.T) {
	svc, _, seen := newAccountService(t)

	a, _ := svc.Add(model.Account{Email: "a@b.com"}, true)
	svc.Update(a)
	svc.Delete(a.ID, true)
	svc.RestoreFromTrash(a.ID)

	kinds := make([]EventKind, 0, len(*seen))
	for _, e := range *seen {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []EventKind{AccountAdded, AccountUpdated, AccountDeleted, AccountRestored}, kinds)
}

func TestDeleteByEmail(t *testing.T) {
	svc, _, _ := newAccountService(t)
	svc.Add(model.Account{Email: "a@b.com"}, true)

	_, ok := svc.DeleteByEmail(" A@B.COM ", true)
	assert.True(t, ok)
	_, ok = svc.DeleteByEmail("missing@b.com", true)
	assert.False(t, ok)
}

func TestDuplicateErrorIsDistinguished(t *testing.T) {
	svc, _, _ := newAccountService(t)
	svc.Add(model.Account{Email: "a@b.com"}, true)
	_, err := svc.Add(model.Account{Email: "a@b.com"}, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateAccount))
}
