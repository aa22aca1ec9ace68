// Package notification holds per-user portal messages and their read state.
package notification

import (
	"errors"
	"sync"
	"time"

	"github.com/kombee/portal/core"
)

// ErrNotFound is returned when a notification id is unknown.
var ErrNotFound = errors.New("notification not found")

type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// Notification read state moves one way only: unread → read.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Source is the remote data source contract for notifications.
type Source interface {
	FetchUserNotifications(userID string) ([]Notification, error)
	// MarkNotificationRead fails with ErrNotFound for an unknown id.
	MarkNotificationRead(id string) (Notification, error)
}

// State is the snapshot exposed to the presentation layer.
type State struct {
	Notifications []Notification
	Loading       bool
	Err           error
}

type Store struct {
	src Source

	mu      sync.Mutex
	gen     uint64
	state   State
	changes core.Broadcaster
}

func NewStore(src Source) *Store {
	return &Store{src: src}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Subscribe(fn func()) func() {
	return s.changes.Subscribe(fn)
}

// FetchUserNotifications loads all notifications addressed to userID.
func (s *Store) FetchUserNotifications(userID string) ([]Notification, error) {
	gen := s.begin()

	notifs, err := s.src.FetchUserNotifications(userID)
	if err != nil {
		return nil, s.fail(gen, err)
	}

	s.complete(gen, func(st *State) { st.Notifications = notifs })
	return notifs, nil
}

// MarkRead flips a notification to read. Re-marking an already-read
// notification is a no-op that leaves it read.
func (s *Store) MarkRead(id string) (Notification, error) {
	gen := s.begin()

	notif, err := s.src.MarkNotificationRead(id)
	if err != nil {
		return Notification{}, s.fail(gen, err)
	}

	s.complete(gen, func(st *State) {
		for i, n := range st.Notifications {
			if n.ID == notif.ID {
				st.Notifications[i] = notif
				return
			}
		}
	})
	return notif, nil
}

// Add prepends an in-memory notification (not persisted to the source).
func (s *Store) Add(n Notification) {
	s.mu.Lock()
	s.state.Notifications = append([]Notification{n}, s.state.Notifications...)
	s.mu.Unlock()
	s.changes.Notify()
}

// Clear drops all in-memory notifications.
func (s *Store) Clear() {
	s.mu.Lock()
	s.state.Notifications = nil
	s.mu.Unlock()
	s.changes.Notify()
}

// UnreadCount reports how many loaded notifications are still unread.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, notif := range s.state.Notifications {
		if !notif.IsRead {
			n++
		}
	}
	return n
}

func (s *Store) begin() uint64 {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state.Loading = true
	s.state.Err = nil
	s.mu.Unlock()
	s.changes.Notify()
	return gen
}

func (s *Store) complete(gen uint64, apply func(*State)) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.state.Loading = false
	apply(&s.state)
	s.mu.Unlock()
	s.changes.Notify()
}

func (s *Store) fail(gen uint64, err error) error {
	s.mu.Lock()
	if gen == s.gen {
		s.state.Loading = false
		s.state.Err = err
	}
	s.mu.Unlock()
	s.changes.Notify()
	return err
}
