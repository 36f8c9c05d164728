package key

// Event is a single key press as reported by a client.
type Event struct {
	Name string
	Mods Modifier
}

// NewEvent builds an Event from a raw key identifier and modifier state.
// The key name is normalized, so two events for the same physical key
// compare equal regardless of how the client spelled it.
func NewEvent(raw string, mods Modifier) Event {
	return Event{Name: Normalize(raw), Mods: mods}
}

// ModifiersFromFlags assembles a Modifier from the boolean modifier fields
// of a client key event.
func ModifiersFromFlags(ctrl, alt, shift, meta bool) Modifier {
	var m Modifier
	if ctrl {
		m = m.With(ModCtrl)
	}
	if alt {
		m = m.With(ModAlt)
	}
	if shift {
		m = m.With(ModShift)
	}
	if meta {
		m = m.With(ModMeta)
	}
	return m
}
