package iconshelf

import (
	"io"
	"log"
	"testing"
	"testing/fstest"
	"time"

	"github.com/eringen/iconshelf/browser"
	"github.com/eringen/iconshelf/loader"
)

func newTestSessions(t *testing.T, max int, idle time.Duration) *Sessions {
	t.Helper()
	l := loader.New(loader.DirSource{FS: testFS()}, loader.WithLogger(log.New(io.Discard, "", 0)))
	s := NewSessions(max, idle, func() *browser.Controller {
		return browser.New(l, nil, browser.WithLogger(log.New(io.Discard, "", 0)))
	})
	t.Cleanup(s.Stop)
	return s
}

func TestSessionsReuseControllerPerID(t *testing.T) {
	s := newTestSessions(t, 10, time.Hour)

	first := s.Controller("a")
	if s.Controller("a") != first {
		t.Fatal("expected the same controller for the same id")
	}
	if s.Controller("b") == first {
		t.Fatal("expected a separate controller for another id")
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", s.Len())
	}
}

func TestSessionsEvictLeastRecentlySeen(t *testing.T) {
	s := newTestSessions(t, 2, time.Hour)

	a := s.Controller("a")
	time.Sleep(5 * time.Millisecond)
	s.Controller("b")
	time.Sleep(5 * time.Millisecond)
	s.Controller("a")
	a.Copied("Box", nil)
	time.Sleep(5 * time.Millisecond)

	s.Controller("c")
	if s.Len() != 2 {
		t.Fatalf("expected the registry to stay at 2, got %d", s.Len())
	}
	if s.Controller("a") != a {
		t.Fatal("expected the recently seen session to survive")
	}
	if a.Notice() == "" {
		t.Fatal("expected the surviving controller to keep its notice")
	}
}

func TestSessionsExpireIdle(t *testing.T) {
	s := newTestSessions(t, 10, time.Hour)

	ctrl := s.Controller("a")
	ctrl.Copied("Box", nil)
	s.expire(time.Now().Add(time.Second))

	if s.Len() != 0 {
		t.Fatalf("expected idle session to be dropped, got %d", s.Len())
	}
	if ctrl.Notice() != "" {
		t.Fatal("expected expired controller to be closed")
	}
	if s.Controller("a") == ctrl {
		t.Fatal("expected a fresh controller after expiry")
	}
}

func TestSessionsStopIsIdempotent(t *testing.T) {
	s := newTestSessions(t, 10, time.Hour)
	ctrl := s.Controller("a")
	ctrl.Copied("Box", nil)

	s.Stop()
	s.Stop()
	if s.Len() != 0 || ctrl.Notice() != "" {
		t.Fatal("expected Stop to close every controller")
	}
}
