package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/model"
)

func newGroupFixture(t *testing.T) (*GroupService, *AccountService, *model.State) {
	t.Helper()
	state := model.NewState()
	events := NewNotifier()
	return NewGroupService(state, events, nil), NewAccountService(state, events, nil), state
}

func TestCreateGroup(t *testing.T) {
	groups, _, state := newGroupFixture(t)

	g, err := groups.Create("work", "blue")
	require.NoError(t, err)
	assert.Equal(t, "blue", g.Color)
	require.Len(t, state.Groups, 1)

	_, err = groups.Create("work", "red")
	require.ErrorIs(t, err, ErrDuplicateGroup)

	g2, err := groups.Create("misc", "\U0001F534")
	require.NoError(t, err)
	assert.Equal(t, "red", g2.Color, "emoji colors migrate on create")
}

func TestDeleteGroupStripsMembership(t *testing.T) {
	groups, accounts, state := newGroupFixture(t)
	groups.Create("work", "blue")

	a, _ := accounts.Add(model.Account{Email: "a@b.com", Groups: []string{"work"}}, true)
	accounts.Add(model.Account{Email: "c@d.com"}, true)

	backup, ok := groups.Delete("work")
	require.True(t, ok)
	assert.Empty(t, state.Groups)
	assert.Equal(t, []int{a.ID}, backup.AffectedAccounts)
	assert.Equal(t, 0, backup.Index)
	assert.False(t, state.Accounts[0].InGroup("work"))

	_, ok = groups.Delete("work")
	assert.False(t, ok, "deleting a missing group is a no-op")
}

func TestUndoDeleteRestoresAtOriginalIndex(t *testing.T) {
	groups, accounts, state := newGroupFixture(t)
	groups.Create("first", "red")
	groups.Create("second", "blue")
	groups.Create("third", "green")

	a, _ := accounts.Add(model.Account{Email: "a@b.com", Groups: []string{"second"}}, true)
	gone, _ := accounts.Add(model.Account{Email: "gone@b.com", Groups: []string{"second"}}, true)

	_, ok := groups.Delete("second")
	require.True(t, ok)

	// One affected account disappears before the undo.
	accounts.Delete(gone.ID, false)

	restored, ok := groups.UndoDelete()
	require.True(t, ok)
	assert.Equal(t, "second", restored.Name)
	require.Len(t, state.Groups, 3)
	assert.Equal(t, "second", state.Groups[1].Name, "restored at original index")
	assert.True(t, state.AccountByID(a.ID).InGroup("second"))

	// Undo twice in a row: the second call is a no-op.
	_, ok = groups.UndoDelete()
	assert.False(t, ok)
}

func TestUndoSlotOverwrittenByNextDeletion(t *testing.T) {
	groups, _, state := newGroupFixture(t)
	groups.Create("one", "red")
	groups.Create("two", "blue")

	groups.Delete("one")
	groups.Delete("two")

	restored, ok := groups.UndoDelete()
	require.True(t, ok)
	assert.Equal(t, "two", restored.Name, "only the latest deletion is undoable")
	require.Len(t, state.Groups, 1)
}

func TestRenameCascades(t *testing.T) {
	groups, accounts, state := newGroupFixture(t)
	groups.Create("old", "red")

	accounts.Add(model.Account{Email: "a@b.com", Groups: []string{"old"}}, true)
	accounts.Add(model.Account{Email: "c@d.com", Groups: []string{"old", "other"}}, true)
	accounts.Add(model.Account{Email: "e@f.com"}, true)

	require.True(t, groups.Rename("old", "new"))
	assert.Equal(t, "new", state.Groups[0].Name)

	for _, a := range state.Accounts {
		assert.False(t, a.InGroup("old"), "no account may still reference the old name")
	}
	assert.True(t, state.Accounts[0].InGroup("new"))
	assert.True(t, state.Accounts[1].InGroup("new"))
	assert.True(t, state.Accounts[1].InGroup("other"))
	assert.False(t, state.Accounts[2].InGroup("new"))

	assert.False(t, groups.Rename("missing", "x"))
}

func TestReorderAppendsOmitted(t *testing.T) {
	groups, _, state := newGroupFixture(t)
	groups.Create("a", "red")
	groups.Create("b", "blue")
	groups.Create("c", "green")

	groups.Reorder([]string{"c", "a"})

	names := make([]string, 0, 3)
	for _, g := range state.Groups {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)

	// Unknown names in the order are ignored.
	groups.Reorder([]string{"zzz", "b"})
	assert.Equal(t, "b", state.Groups[0].Name)
	assert.Len(t, state.Groups, 3)
}

func TestUpdateColor(t *testing.T) {
	groups, _, state := newGroupFixture(t)
	groups.Create("g", "red")

	require.True(t, groups.UpdateColor("g", "#ABCDEF"))
	assert.Equal(t, "#ABCDEF", state.Groups[0].Color)

	require.True(t, groups.UpdateColor("g", "nonsense"))
	assert.Equal(t, "red", state.Groups[0].Color)

	assert.False(t, groups.UpdateColor("missing", "red"))
}

func TestBulkMembership(t *testing.T) {
	groups, accounts, state := newGroupFixture(t)
	groups.Create("work", "red")

	a, _ := accounts.Add(model.Account{Email: "a@b.com"}, true)
	b, _ := accounts.Add(model.Account{Email: "c@d.com", Groups: []string{"work"}}, true)

	added := groups.AddAccountsToGroup([]int{a.ID, b.ID, 99}, "work")
	assert.Equal(t, 1, added, "only accounts not already members count")
	assert.True(t, state.AccountByID(a.ID).InGroup("work"))

	removed := groups.RemoveAccountsFromGroup([]int{a.ID, b.ID, 99}, "work")
	assert.Equal(t, 2, removed)
	assert.True(t, state.AccountByID(a.ID).Ungrouped())
}
