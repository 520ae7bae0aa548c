package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSlideEnter EventType = "slide_enter"
	EventSlideLeave EventType = "slide_leave"
	EventStep       EventType = "step"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// SlideEvent represents entry or exit from a slide.
type SlideEvent struct {
	EventBase
	SlideID    string `json:"slide_id"`
	Index      int    `json:"index"`
	Generation uint64 `json:"generation"`
}

// StepEvent represents a walkthrough step change inside a slide.
type StepEvent struct {
	EventBase
	SlideID string `json:"slide_id"`
	Step    int    `json:"step"`
	Current string `json:"current,omitempty"`
}

// LifecycleHooks defines callbacks for presentation observability.
type LifecycleHooks struct {
	OnSlideEnter func(context.Context, *SlideEvent)
	OnSlideLeave func(context.Context, *SlideEvent)
	OnStep       func(context.Context, *StepEvent)
}
