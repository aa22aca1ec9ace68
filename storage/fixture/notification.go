package fixturedb

import (
	"github.com/kombee/portal/core/notification"
)

type notificationSource struct {
	db *DB
}

var _ notification.Source = (*notificationSource)(nil) // interface compliance check

func NewNotificationSource(db *DB) notification.Source {
	return &notificationSource{db: db}
}

func (src *notificationSource) FetchUserNotifications(userID string) ([]notification.Notification, error) {
	src.db.simulateLatency()

	src.db.notification.RLock()
	defer src.db.notification.RUnlock()

	// newest first, matching the seeded insertion order
	var notifs []notification.Notification
	for i := len(src.db.notification.order) - 1; i >= 0; i-- {
		notif := src.db.notification.table[src.db.notification.order[i]]
		if notif.UserID == userID {
			notifs = append(notifs, *notif)
		}
	}
	return notifs, nil
}

func (src *notificationSource) MarkNotificationRead(id string) (notification.Notification, error) {
	src.db.simulateLatency()

	src.db.notification.Lock()
	defer src.db.notification.Unlock()

	notif, ok := src.db.notification.table[id]
	if !ok {
		return notification.Notification{}, notification.ErrNotFound
	}
	notif.IsRead = true
	return *notif, nil
}
