// Package auth owns the current-user session lifecycle: login, logout and
// restore-session flows, with the session persisted to a durable key-value
// store so it survives a process restart.
package auth

import (
	"encoding/json"
	"errors"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"github.com/kombee/portal/core"
	"github.com/kombee/portal/core/user"
)

// durable storage keys, kept from the portal frontend for compatibility
const (
	tokenKey = "kombee_token"
	userKey  = "kombee_user"
)

var (
	// errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrAccountDeactivated = errors.New("account deactivated")
)

// Status is the session lifecycle state.
type Status string

const (
	StatusAnonymous      Status = "anonymous"
	StatusAuthenticating Status = "authenticating"
	StatusAuthenticated  Status = "authenticated"
)

// Session is the state snapshot exposed to the presentation layer.
// Err holds the failure of the last operation, if any; a failed operation
// always settles back on StatusAnonymous.
type Session struct {
	Status          Status
	User            *user.User
	Token           string
	IsAuthenticated bool
	Loading         bool
	Err             error
}

// Manager is the auth session store. All operations are atomic relative to
// each other; overlapping operations resolve last-writer-wins guarded by a
// generation counter so a stale completion never overwrites newer state.
type Manager struct {
	users *user.Service
	store core.KeyValueStore
	conf  *core.Config

	mu      sync.Mutex
	gen     uint64
	sess    Session
	changes core.Broadcaster
}

func NewManager(users *user.Service, store core.KeyValueStore, conf *core.Config) *Manager {
	return &Manager{
		users: users,
		store: store,
		conf:  conf,
		sess:  Session{Status: StatusAnonymous},
	}
}

// Session returns the current state snapshot.
func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess
}

// Subscribe registers a change listener; the returned function removes it.
func (m *Manager) Subscribe(fn func()) func() {
	return m.changes.Subscribe(fn)
}

// Login authenticates by case-insensitive email and password. On success the
// session token and user snapshot are persisted to durable storage and the
// session transitions to authenticated.
func (m *Manager) Login(email, password string) (Session, error) {
	gen := m.begin(StatusAuthenticating)

	usr, err := m.users.GetByEmail(email)
	if err != nil {
		if err == user.ErrNotFound {
			return m.fail(gen, ErrInvalidCredentials)
		}
		return m.fail(gen, pkgerrors.Wrap(err, "finding user by email"))
	}
	if err = usr.CheckPassword(password); err != nil {
		return m.fail(gen, ErrInvalidCredentials)
	}
	if !usr.IsActive {
		return m.fail(gen, ErrAccountDeactivated)
	}

	usr, err = m.users.SetLastLogin(usr)
	if err != nil {
		return m.fail(gen, pkgerrors.Wrap(err, "setting lastLogin"))
	}

	token, err := GenerateToken(NewUserClaims(usr, m.conf), m.conf)
	if err != nil {
		return m.fail(gen, err)
	}
	if err = m.persist(usr, token); err != nil {
		return m.fail(gen, err)
	}

	return m.succeed(gen, usr, token)
}

// RestoreSession loads a previously persisted session, typically once at
// process start. Corrupt entries are purged and treated the same as an
// absent session: the caller lands on anonymous, never an error page.
func (m *Manager) RestoreSession() (Session, error) {
	gen := m.begin(StatusAuthenticating)

	token, err := m.store.Get(tokenKey)
	if err != nil {
		if err == core.ErrKeyNotFound {
			return m.fail(gen, ErrNotAuthenticated)
		}
		return m.fail(gen, pkgerrors.Wrap(err, "reading session token"))
	}
	rawUsr, err := m.store.Get(userKey)
	if err != nil {
		if err == core.ErrKeyNotFound {
			return m.fail(gen, ErrNotAuthenticated)
		}
		return m.fail(gen, pkgerrors.Wrap(err, "reading session user"))
	}

	var usr user.User
	if err = json.Unmarshal([]byte(rawUsr), &usr); err != nil {
		m.purge()
		return m.fail(gen, ErrNotAuthenticated)
	}
	if _, err = ParseToken(token, m.conf); err != nil {
		m.purge()
		return m.fail(gen, ErrNotAuthenticated)
	}

	return m.succeed(gen, usr, token)
}

// Logout purges the persisted session and returns to anonymous,
// regardless of prior state.
func (m *Manager) Logout() error {
	gen := m.begin(StatusAuthenticating)
	m.purge()

	m.mu.Lock()
	if gen == m.gen {
		m.sess = Session{Status: StatusAnonymous}
	}
	m.mu.Unlock()
	m.changes.Notify()
	return nil
}

// ResetError clears the last operation failure from the snapshot.
func (m *Manager) ResetError() {
	m.mu.Lock()
	m.sess.Err = nil
	m.mu.Unlock()
	m.changes.Notify()
}

func (m *Manager) begin(status Status) uint64 {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.sess.Status = status
	m.sess.Loading = true
	m.sess.Err = nil
	m.mu.Unlock()
	m.changes.Notify()
	return gen
}

func (m *Manager) succeed(gen uint64, usr user.User, token string) (Session, error) {
	m.mu.Lock()
	if gen != m.gen { // stale completion; keep newer state
		sess := m.sess
		m.mu.Unlock()
		return sess, nil
	}
	m.sess = Session{
		Status:          StatusAuthenticated,
		User:            &usr,
		Token:           token,
		IsAuthenticated: true,
	}
	sess := m.sess
	m.mu.Unlock()
	m.changes.Notify()
	return sess, nil
}

func (m *Manager) fail(gen uint64, err error) (Session, error) {
	m.mu.Lock()
	if gen != m.gen {
		sess := m.sess
		m.mu.Unlock()
		return sess, err
	}
	m.sess = Session{Status: StatusAnonymous, Err: err}
	sess := m.sess
	m.mu.Unlock()
	m.changes.Notify()
	return sess, err
}

func (m *Manager) persist(usr user.User, token string) error {
	data, err := json.Marshal(usr)
	if err != nil {
		return pkgerrors.Wrap(err, "marshalling session user")
	}
	if err = m.store.Set(tokenKey, token); err != nil {
		return pkgerrors.Wrap(err, "persisting session token")
	}
	if err = m.store.Set(userKey, string(data)); err != nil {
		return pkgerrors.Wrap(err, "persisting session user")
	}
	return nil
}

func (m *Manager) purge() {
	_ = m.store.Delete(tokenKey)
	_ = m.store.Delete(userKey)
}
