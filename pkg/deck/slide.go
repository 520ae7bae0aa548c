package deck

import "github.com/aretw0/showcase/pkg/sequencer"

// Slide is a mounted slide instance.
type Slide interface {
	ID() string
	Title() string
	// Close releases every timer the slide armed.
	Close()
}

// KeyHandler is implemented by slides that consume keys before deck navigation.
type KeyHandler interface {
	HandleKey(key string) bool
}

// Mount is what a factory receives when its slide is mounted.
type Mount struct {
	Generation uint64
	Clock      sequencer.Clock
	// Notify tells the host the slide changed on its own (a timer fired).
	// Calls from a slide that is no longer mounted are ignored.
	Notify func()
}

// Factory builds a fresh slide instance.
type Factory func(m Mount) Slide

// Entry registers a slide in the deck.
type Entry struct {
	ID          string
	Title       string
	Description string
	Factory     Factory
}
