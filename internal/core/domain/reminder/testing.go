package reminder

import (
	"context"
	"sync"
	"time"
)

type TestEventStore struct {
	LoadError error
	SaveError error
	Saved     [][]Event

	lock    sync.Mutex
	events  []Event
	watch   chan struct{}
	watched bool
}

func NewTestEventStore(events ...Event) *TestEventStore {
	return &TestEventStore{events: events, watch: make(chan struct{}, 16)}
}

func (s *TestEventStore) Load(ctx context.Context) ([]Event, error) {
	if s.LoadError != nil {
		return nil, s.LoadError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	return events, nil
}

func (s *TestEventStore) Save(ctx context.Context, events []Event) error {
	if s.SaveError != nil {
		return s.SaveError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.events = make([]Event, len(events))
	copy(s.events, events)
	s.Saved = append(s.Saved, s.events)
	return nil
}

func (s *TestEventStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.watched = true
	return s.watch, nil
}

// SetEvents replaces the stored list as an external writer would.
func (s *TestEventStore) SetEvents(events ...Event) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.events = make([]Event, len(events))
	copy(s.events, events)
}

// Notify fires the change-notification channel.
func (s *TestEventStore) Notify() {
	s.watch <- struct{}{}
}

type TestSender struct {
	SendPermission Permission
	SendError      error

	lock sync.Mutex
	Sent []Event
}

func NewTestSender() *TestSender {
	return &TestSender{SendPermission: PermissionGranted}
}

func (s *TestSender) Permission(ctx context.Context) Permission {
	return s.SendPermission
}

func (s *TestSender) SendReminder(ctx context.Context, ev Event) error {
	if s.SendError != nil {
		return s.SendError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, ev)
	return nil
}

type TestDuePublisher struct {
	Error error

	lock      sync.Mutex
	Published []Event
}

func NewTestDuePublisher() *TestDuePublisher {
	return &TestDuePublisher{}
}

func (p *TestDuePublisher) PublishDue(ctx context.Context, ev Event) error {
	if p.Error != nil {
		return p.Error
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, ev)
	return nil
}

// TestDispatchGuard remembers seen tags in memory.
type TestDispatchGuard struct {
	Error error

	lock sync.Mutex
	seen map[string]struct{}
}

func NewTestDispatchGuard() *TestDispatchGuard {
	return &TestDispatchGuard{seen: make(map[string]struct{})}
}

func (g *TestDispatchGuard) FirstDispatch(ctx context.Context, tag string) (bool, error) {
	if g.Error != nil {
		return false, g.Error
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	if _, ok := g.seen[tag]; ok {
		return false, nil
	}
	g.seen[tag] = struct{}{}
	return true, nil
}

// TestEvent builds a standard-mode event with a compiled trigger instant.
func TestEvent(id ID, at time.Time) Event {
	ev := Event{
		ID:        id,
		Title:     "Test reminder",
		Mode:      ModeStandard,
		StartDate: at.Format("2006-01-02"),
		StartTime: at.Format("15:04"),
		CreatedAt: at.Add(-time.Hour),
	}
	ev.ReminderTime.Value = at
	ev.ReminderTime.IsPresent = true
	return ev
}
