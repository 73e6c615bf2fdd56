package reminder

import "context"

// Permission is the notification surface's delivery permission state.
// It is read-only to the engine.
type Permission struct {
	v string
}

func (p Permission) String() string {
	return p.v
}

var (
	PermissionGranted     = Permission{v: "granted"}
	PermissionDenied      = Permission{v: "denied"}
	PermissionDefault     = Permission{v: "default"}
	PermissionUnsupported = Permission{v: "unsupported"}
)

// Sender is a system-level notification surface. Delivery is best effort:
// a sender without granted permission is skipped silently and a failed send
// never affects the scheduling state machine.
type Sender interface {
	Permission(ctx context.Context) Permission
	SendReminder(ctx context.Context, ev Event) error
}

// DuePublisher hands a newly due event off for asynchronous delivery.
// The poller never waits for the outcome.
type DuePublisher interface {
	PublishDue(ctx context.Context, ev Event) error
}

// DispatchGuard decides whether this is the first dispatch for the given
// notification tag, so a due transition is surfaced at most once even
// across overlapping ticks, redeliveries and process restarts.
type DispatchGuard interface {
	FirstDispatch(ctx context.Context, tag string) (bool, error)
}
