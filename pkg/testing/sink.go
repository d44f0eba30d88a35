package testing

import "github.com/go-drift/carousel/pkg/registry"

// Event is one recorded sink callback.
type Event struct {
	Item     *registry.Item
	Position int
}

// RecordingSink records every callback it receives.
type RecordingSink struct {
	Scrolls     int
	Selects     []Event
	Taps        []Event
	LongPresses []Event
	// Panic, when set, is raised from every callback after it is recorded.
	Panic any
}

func (s *RecordingSink) OnScroll() {
	s.Scrolls++
	s.raise()
}

func (s *RecordingSink) OnSelect(item *registry.Item, position int) {
	s.Selects = append(s.Selects, Event{item, position})
	s.raise()
}

func (s *RecordingSink) OnTap(item *registry.Item, position int) {
	s.Taps = append(s.Taps, Event{item, position})
	s.raise()
}

func (s *RecordingSink) OnLongPress(item *registry.Item, position int) {
	s.LongPresses = append(s.LongPresses, Event{item, position})
	s.raise()
}

// LastSelect returns the most recent OnSelect event.
func (s *RecordingSink) LastSelect() (Event, bool) {
	if len(s.Selects) == 0 {
		return Event{}, false
	}
	return s.Selects[len(s.Selects)-1], true
}

// Reset clears every recorded callback.
func (s *RecordingSink) Reset() {
	s.Scrolls = 0
	s.Selects = nil
	s.Taps = nil
	s.LongPresses = nil
}

func (s *RecordingSink) raise() {
	if s.Panic != nil {
		panic(s.Panic)
	}
}
