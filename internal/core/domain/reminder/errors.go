package reminder

import "errors"

var (
	ErrEventDoesNotExist = errors.New("reminder event does not exist")
	ErrEventDismissed    = errors.New("reminder event has been dismissed")
	ErrEventNotActive    = errors.New("reminder event is not in the active queue")
)
