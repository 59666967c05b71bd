package iconshelf

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/eringen/iconshelf/browser"
)

const (
	sessionName   = "iconshelf_session"
	sessionKeyID  = "viewer"
	sessionMaxAge = 12 * time.Hour
	controllerKey = "iconshelf.controller"
)

// Sessions keeps one browser.Controller per viewer session. Controllers
// idle for longer than the session lifetime are closed, and the least
// recently seen one is closed when the registry is full.
type Sessions struct {
	mu      sync.Mutex
	viewers map[string]*entry
	max     int
	idle    time.Duration
	newCtrl func() *browser.Controller
	done    chan struct{}
	once    sync.Once
}

type entry struct {
	ctrl *browser.Controller
	seen time.Time
}

// NewSessions creates a registry holding at most max controllers built by
// newCtrl.
func NewSessions(max int, idle time.Duration, newCtrl func() *browser.Controller) *Sessions {
	s := &Sessions{
		viewers: make(map[string]*entry),
		max:     max,
		idle:    idle,
		newCtrl: newCtrl,
		done:    make(chan struct{}),
	}
	go s.cleanup()
	return s
}

func (s *Sessions) cleanup() {
	ticker := time.NewTicker(s.idle / 4)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
		}
		s.expire(time.Now().Add(-s.idle))
	}
}

func (s *Sessions) expire(cutoff time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, v := range s.viewers {
		if v.seen.Before(cutoff) {
			v.ctrl.Close()
			delete(s.viewers, id)
		}
	}
}

// Controller returns the controller of session id, creating it on first use.
func (s *Sessions) Controller(id string) *browser.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.viewers[id]; ok {
		v.seen = time.Now()
		return v.ctrl
	}
	if len(s.viewers) >= s.max {
		s.evictOldestLocked()
	}
	v := &entry{ctrl: s.newCtrl(), seen: time.Now()}
	s.viewers[id] = v
	return v.ctrl
}

func (s *Sessions) evictOldestLocked() {
	var oldest string
	var seen time.Time
	for id, v := range s.viewers {
		if oldest == "" || v.seen.Before(seen) {
			oldest, seen = id, v.seen
		}
	}
	if v, ok := s.viewers[oldest]; ok {
		v.ctrl.Close()
		delete(s.viewers, oldest)
	}
}

// Len returns the number of live controllers.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.viewers)
}

// Stop ends the background cleanup and closes every controller.
func (s *Sessions) Stop() {
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		defer s.mu.Unlock()
		for id, v := range s.viewers {
			v.ctrl.Close()
			delete(s.viewers, id)
		}
	})
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore(a.sessionKey)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(sessionMaxAge / time.Second),
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// viewerID returns the id stored in the session cookie, issuing a new one
// when the cookie is missing or cannot be decoded.
func viewerID(c echo.Context) (string, error) {
	sess, err := session.Get(sessionName, c)
	if sess == nil {
		return "", err
	}
	if id, ok := sess.Values[sessionKeyID].(string); ok && id != "" {
		return id, nil
	}
	id := uuid.NewString()
	sess.Values[sessionKeyID] = id
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return "", err
	}
	return id, nil
}

// sessionMiddleware attaches the viewer's controller to the request.
func (a *App) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := viewerID(c)
		if err != nil {
			return err
		}
		c.Set(controllerKey, a.Sessions.Controller(id))
		return next(c)
	}
}

// controller returns the viewer's controller set by sessionMiddleware.
func controller(c echo.Context) *browser.Controller {
	ctrl, _ := c.Get(controllerKey).(*browser.Controller)
	return ctrl
}
