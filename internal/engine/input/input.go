// Package input translates SDL2 events into pointer and key events for the
// editor.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventFocusLost
	EventKeyDown
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventWheel
)

// Button identifies a pointer button.
type Button uint8

const (
	ButtonLeft   Button = sdl.BUTTON_LEFT
	ButtonMiddle Button = sdl.BUTTON_MIDDLE
	ButtonRight  Button = sdl.BUTTON_RIGHT
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int

	// Pointer position and, for moves, relative motion in pixels.
	X, Y   float32
	DX, DY float32
	Button Button

	// Wheel is the vertical scroll amount, positive away from the user.
	Wheel float32
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to editor events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		ev, ok := Translate(event)
		if !ok {
			continue
		}
		i.events = append(i.events, ev)
		if ev.Type == EventQuit {
			return true
		}
	}
	return false
}

// Translate converts one SDL event. ok is false for events the editor
// ignores.
func Translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		case sdl.WINDOWEVENT_FOCUS_LOST:
			// Pointer capture is gone; any stroke must end.
			return Event{Type: EventFocusLost}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		}

	case *sdl.MouseMotionEvent:
		return Event{
			Type: EventPointerMove,
			X:    float32(e.X),
			Y:    float32(e.Y),
			DX:   float32(e.XRel),
			DY:   float32(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		ev := Event{X: float32(e.X), Y: float32(e.Y), Button: Button(e.Button)}
		switch e.Type {
		case sdl.MOUSEBUTTONDOWN:
			ev.Type = EventPointerDown
			return ev, true
		case sdl.MOUSEBUTTONUP:
			ev.Type = EventPointerUp
			return ev, true
		}

	case *sdl.MouseWheelEvent:
		dy := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dy = -dy
		}
		return Event{Type: EventWheel, Wheel: dy}, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
