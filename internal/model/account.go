package model

import (
	"strings"
	"time"
)

// ImportTimeLayout is the timestamp format stored in Account.ImportTime.
const ImportTimeLayout = "2006-01-02 15:04"

// Account is a single managed credential row. Identity for duplicate
// detection is the normalized email; ID is a separate surrogate key
// assigned when the account enters the live collection.
type Account struct {
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Backup     string   `json:"backup"`
	Secret     string   `json:"secret"`
	ID         int      `json:"id"`
	ImportTime string   `json:"import_time"`
	Groups     []string `json:"groups"`
	Notes      string   `json:"notes"`
}

// NewAccount returns an account stamped with the current import time.
func NewAccount(email, password, backup, secret string) Account {
	return Account{
		Email:      email,
		Password:   password,
		Backup:     backup,
		Secret:     secret,
		ImportTime: time.Now().Format(ImportTimeLayout),
	}
}

// Normalized returns the lower-cased, trimmed email used as the sole
// duplicate-detection key.
func (a Account) Normalized() string {
	return strings.ToLower(strings.TrimSpace(a.Email))
}

// Has2FA reports whether the account carries a TOTP secret.
func (a Account) Has2FA() bool {
	return strings.TrimSpace(a.Secret) != ""
}

// Equal reports duplicate identity: same normalized email.
func (a Account) Equal(other Account) bool {
	return a.Normalized() == other.Normalized()
}

// InGroup reports membership in the named group.
func (a Account) InGroup(name string) bool {
	for _, g := range a.Groups {
		if g == name {
			return true
		}
	}
	return false
}

// Ungrouped reports whether the account belongs to no group.
func (a Account) Ungrouped() bool {
	return len(a.Groups) == 0
}

// AddToGroup appends the group name if absent. Returns true when added.
func (a *Account) AddToGroup(name string) bool {
	if a.InGroup(name) {
		return false
	}
	a.Groups = append(a.Groups, name)
	return true
}

// RemoveFromGroup drops the group name if present. Returns true when removed.
func (a *Account) RemoveFromGroup(name string) bool {
	for i, g := range a.Groups {
		if g == name {
			a.Groups = append(a.Groups[:i], a.Groups[i+1:]...)
			return true
		}
	}
	return false
}
