package events

// Publisher is the interface the engines publish through. A nil Publisher
// is valid everywhere and means notifications are disabled; callers use
// Emit to avoid nil checks at every site.
type Publisher interface {
	Publish(event Event)
}

// Compile-time verification that *Bus implements Publisher
var _ Publisher = (*Bus)(nil)

// Emit publishes event on p when p is non-nil.
func Emit(p Publisher, event Event) {
	if p != nil {
		p.Publish(event)
	}
}
