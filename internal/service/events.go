package service

import "github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/model"

// EventKind identifies a mutation notification.
type EventKind string

const (
	AccountAdded    EventKind = "account_added"
	AccountUpdated  EventKind = "account_updated"
	AccountDeleted  EventKind = "account_deleted"
	AccountRestored EventKind = "account_restored"
	GroupAdded      EventKind = "group_added"
	GroupUpdated    EventKind = "group_updated"
	GroupDeleted    EventKind = "group_deleted"
	GroupsReordered EventKind = "groups_reordered"
)

// Event carries the payload of a mutation. Account is set for account
// events except deletion, which carries only the id; group events carry
// the group or its name.
type Event struct {
	Kind      EventKind
	Account   *model.Account
	AccountID int
	Group     *model.Group
	GroupName string
}

// Listener receives mutation events. Listeners run synchronously on the
// mutating call, in registration order.
type Listener func(Event)

// Notifier is the observer registry the presentation layer subscribes to.
type Notifier struct {
	listeners []Listener
}

// NewNotifier returns an empty registry.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers a listener for all future events.
func (n *Notifier) Subscribe(l Listener) {
	n.listeners = append(n.listeners, l)
}

func (n *Notifier) emit(e Event) {
	for _, l := range n.listeners {
		l(e)
	}
}
