package collector

// Slot is the rendezvous a host hands to a widget factory so it can reach
// the widget's value protocol after construction. The factory publishes the
// built input into the slot; the host reads it back once assembly finishes.
type Slot struct {
	src Source
}

// Publish records src in the slot. Later publishes replace earlier ones.
func (s *Slot) Publish(src Source) {
	if s == nil {
		return
	}
	s.src = src
}

// Get returns the published source, if any.
func (s *Slot) Get() (Source, bool) {
	if s == nil || s.src == nil {
		return nil, false
	}
	return s.src, true
}

// MustGet returns the published source or panics when nothing has been
// published yet.
func (s *Slot) MustGet() Source {
	src, ok := s.Get()
	if !ok {
		panic("collector: slot is empty")
	}
	return src
}
