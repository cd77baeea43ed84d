package core

import (
	glm "github.com/go-gl/mathgl/mgl32"
)

// ZoomStep is the zoom change per unit of scroll
const ZoomStep = 0.05

// InputState is the user input accumulated by the window shell.
// It's owned and mutated by the event loop only and passed to the
// renderer by value once per frame. Nothing is ever reset.
type InputState struct {
	// Drag is the cursor movement accumulated while a button was held
	Drag [2]float64

	// Zoom scales the camera distance, it's not clamped
	Zoom float64

	// ModelOffset moves every model in the view plane
	ModelOffset glm.Vec2

	// CameraOffset is the camera yaw and pitch offset
	CameraOffset glm.Vec2

	dragging  bool
	hasCursor bool
	cursor    [2]float64
}

// NewInputState returns the state at application start
func NewInputState() InputState {
	return InputState{Zoom: 1}
}

// SetDragging starts or stops accumulating cursor movement
func (s *InputState) SetDragging(dragging bool) {
	s.dragging = dragging
}

// Dragging reports if cursor movement is being accumulated
func (s *InputState) Dragging() bool {
	return s.dragging
}

// MoveCursor records the absolute cursor position. The position
// is always tracked, only the movement while dragging is accumulated.
func (s *InputState) MoveCursor(x, y float64) {
	if s.dragging && s.hasCursor {
		s.Drag[0] += x - s.cursor[0]
		s.Drag[1] += y - s.cursor[1]
	}
	s.cursor = [2]float64{x, y}
	s.hasCursor = true
}

// Scroll applies a scroll wheel delta to the zoom factor
func (s *InputState) Scroll(delta float64) {
	s.Zoom += ZoomStep * delta
}

// MoveModel translates the model offset
func (s *InputState) MoveModel(dx, dy float32) {
	s.ModelOffset = s.ModelOffset.Add(glm.Vec2{dx, dy})
}

// TurnCamera changes the camera yaw and pitch offset
func (s *InputState) TurnCamera(yaw, pitch float32) {
	s.CameraOffset = s.CameraOffset.Add(glm.Vec2{yaw, pitch})
}
