package notification

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	notifications map[string]*Notification
	order         []string
	err           error
}

func (s *stubSource) FetchUserNotifications(userID string) ([]Notification, error) {
	if s.err != nil {
		return nil, s.err
	}
	var notifs []Notification
	for _, id := range s.order {
		if n := s.notifications[id]; n.UserID == userID {
			notifs = append(notifs, *n)
		}
	}
	return notifs, nil
}

func (s *stubSource) MarkNotificationRead(id string) (Notification, error) {
	n, ok := s.notifications[id]
	if !ok {
		return Notification{}, ErrNotFound
	}
	n.IsRead = true
	return *n, nil
}

func seededSource() *stubSource {
	now := time.Now().UTC()
	return &stubSource{
		notifications: map[string]*Notification{
			"n1": {ID: "n1", UserID: "u1", Title: "Welcome", Type: TypeInfo, CreatedAt: now},
			"n2": {ID: "n2", UserID: "u1", Title: "Course completed", Type: TypeSuccess, IsRead: true, CreatedAt: now},
			"n3": {ID: "n3", UserID: "u2", Title: "Deadline", Type: TypeWarning, CreatedAt: now},
		},
		order: []string{"n1", "n2", "n3"},
	}
}

func TestStore_FetchUserNotifications(t *testing.T) {
	src := seededSource()
	s := NewStore(src)

	notifs, err := s.FetchUserNotifications("u1")
	require.NoError(t, err)
	require.Len(t, notifs, 2)
	assert.Equal(t, notifs, s.State().Notifications)
	assert.False(t, s.State().Loading)

	notifs, err = s.FetchUserNotifications("nobody")
	require.NoError(t, err)
	assert.Empty(t, notifs)

	src.err = errors.New("boom")
	_, err = s.FetchUserNotifications("u1")
	require.Error(t, err)
	assert.Equal(t, src.err, s.State().Err)
}

func TestStore_MarkRead(t *testing.T) {
	src := seededSource()
	s := NewStore(src)
	_, err := s.FetchUserNotifications("u1")
	require.NoError(t, err)

	n, err := s.MarkRead("n1")
	require.NoError(t, err)
	assert.True(t, n.IsRead)
	assert.True(t, s.State().Notifications[0].IsRead)

	// read state only moves one way
	n, err = s.MarkRead("n1")
	require.NoError(t, err)
	assert.True(t, n.IsRead)

	_, err = s.MarkRead("nope")
	assert.Equal(t, ErrNotFound, err)
}

func TestStore_UnreadCount(t *testing.T) {
	s := NewStore(seededSource())
	assert.Zero(t, s.UnreadCount())

	_, err := s.FetchUserNotifications("u1")
	require.NoError(t, err)
	assert.Equal(t, 1, s.UnreadCount())

	_, err = s.MarkRead("n1")
	require.NoError(t, err)
	assert.Zero(t, s.UnreadCount())
}

func TestStore_AddAndClear(t *testing.T) {
	s := NewStore(seededSource())
	_, err := s.FetchUserNotifications("u1")
	require.NoError(t, err)

	s.Add(Notification{ID: "local", UserID: "u1", Title: "Saved", Type: TypeSuccess})
	st := s.State()
	require.Len(t, st.Notifications, 3)
	assert.Equal(t, "local", st.Notifications[0].ID)

	s.Clear()
	assert.Empty(t, s.State().Notifications)
	assert.Zero(t, s.UnreadCount())
}
