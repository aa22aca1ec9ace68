// Package portal composes the individual stores into the application root.
// Hosts (the HTTP API, the admin CLI, tests) build one App and talk to its
// stores; there are no package-level singletons.
package portal

import (
	"github.com/pkg/errors"

	"github.com/kombee/portal/core"
	"github.com/kombee/portal/core/assessment"
	"github.com/kombee/portal/core/auth"
	"github.com/kombee/portal/core/course"
	"github.com/kombee/portal/core/notification"
	"github.com/kombee/portal/core/progress"
	"github.com/kombee/portal/core/user"
	fixturedb "github.com/kombee/portal/storage/fixture"
	kvstore "github.com/kombee/portal/storage/kv"
)

// Deps are the collaborators an App is built from. Zero-value fields fall
// back to fixture-backed defaults.
type Deps struct {
	UserRepo           user.Repository
	CourseSource       course.Source
	ProgressSource     progress.Source
	AssessmentSource   assessment.Source
	NotificationSource notification.Source
	SessionStore       core.KeyValueStore
	MailSvc            core.EmailService
}

// App is the composed application root.
type App struct {
	Auth          *auth.Manager
	Users         *user.Service
	Catalog       *course.Store
	Progress      *progress.Tracker
	Assessments   *assessment.Engine
	Notifications *notification.Store
}

// New wires an App together. Any collaborator left nil in deps is replaced
// with the fixture-backed default so a bare New(conf, Deps{MailSvc: ...})
// yields a fully working app.
func New(conf *core.Config, deps Deps) (*App, error) {
	if err := fillDefaults(conf, &deps); err != nil {
		return nil, err
	}

	usrSvc := user.NewService(deps.UserRepo, deps.MailSvc, conf)
	catalog := course.NewStore(deps.CourseSource)

	app := &App{
		Auth:          auth.NewManager(usrSvc, deps.SessionStore, conf),
		Users:         usrSvc,
		Catalog:       catalog,
		Progress:      progress.NewTracker(deps.ProgressSource, catalog),
		Assessments:   assessment.NewEngine(deps.AssessmentSource),
		Notifications: notification.NewStore(deps.NotificationSource),
	}
	return app, nil
}

func fillDefaults(conf *core.Config, deps *Deps) error {
	needsFixtures := deps.UserRepo == nil || deps.CourseSource == nil ||
		deps.ProgressSource == nil || deps.AssessmentSource == nil ||
		deps.NotificationSource == nil

	if needsFixtures {
		db, err := fixturedb.Open(conf)
		if err != nil {
			return errors.Wrap(err, "opening fixture source")
		}
		if deps.UserRepo == nil {
			deps.UserRepo = fixturedb.NewUserRepository(db)
		}
		if deps.CourseSource == nil {
			deps.CourseSource = fixturedb.NewCourseSource(db)
		}
		if deps.ProgressSource == nil {
			deps.ProgressSource = fixturedb.NewProgressSource(db)
		}
		if deps.AssessmentSource == nil {
			deps.AssessmentSource = fixturedb.NewAssessmentSource(db)
		}
		if deps.NotificationSource == nil {
			deps.NotificationSource = fixturedb.NewNotificationSource(db)
		}
	}

	if deps.SessionStore == nil {
		if conf.TestMode {
			deps.SessionStore = kvstore.NewMemoryStore()
		} else {
			store, err := kvstore.OpenFileStore(conf.SessionPath)
			if err != nil {
				return errors.Wrap(err, "opening session store")
			}
			deps.SessionStore = store
		}
	}
	return nil
}
