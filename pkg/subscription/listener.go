package subscription

// Listener receives notifications for one subscription.
type Listener interface {
	// OnPublicationMissed is called when the alert interval elapses.
	OnPublicationMissed()

	// OnPublication is called with each publication delivered for the
	// subscription.
	OnPublication(value any)

	// OnError is called with errors reported for the subscription.
	OnError(err error)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are ignored.
type ListenerFuncs struct {
	Missed      func()
	Publication func(value any)
	Error       func(err error)
}

// OnPublicationMissed calls Missed.
func (f ListenerFuncs) OnPublicationMissed() {
	if f.Missed != nil {
		f.Missed()
	}
}

// OnPublication calls Publication.
func (f ListenerFuncs) OnPublication(value any) {
	if f.Publication != nil {
		f.Publication(value)
	}
}

// OnError calls Error.
func (f ListenerFuncs) OnError(err error) {
	if f.Error != nil {
		f.Error(err)
	}
}

var _ Listener = ListenerFuncs{}
