package main

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/koruview/core"
)

// KeyStep is the offset change per key press
const KeyStep = 0.1

// handleEvent applies one window event to the input state and
// reports whether the viewer should quit
func handleEvent(event sdl.Event, input *core.InputState) bool {
	switch et := event.(type) {
	case *sdl.QuitEvent:
		return true
	case *sdl.MouseButtonEvent:
		input.SetDragging(et.State == sdl.PRESSED)
	case *sdl.MouseMotionEvent:
		input.MoveCursor(float64(et.X), float64(et.Y))
	case *sdl.MouseWheelEvent:
		delta := float64(et.Y)
		if et.Direction == sdl.MOUSEWHEEL_FLIPPED {
			delta = -delta
		}
		input.Scroll(delta)
	case *sdl.KeyboardEvent:
		if et.Type != sdl.KEYDOWN {
			return false
		}
		return handleKey(et.Keysym.Sym, input)
	}
	return false
}

func handleKey(key sdl.Keycode, input *core.InputState) bool {
	switch key {
	case sdl.K_ESCAPE:
		return true
	case sdl.K_UP:
		input.MoveModel(0, KeyStep)
	case sdl.K_DOWN:
		input.MoveModel(0, -KeyStep)
	case sdl.K_LEFT:
		input.MoveModel(-KeyStep, 0)
	case sdl.K_RIGHT:
		input.MoveModel(KeyStep, 0)
	case sdl.K_w:
		input.TurnCamera(0, KeyStep)
	case sdl.K_s:
		input.TurnCamera(0, -KeyStep)
	case sdl.K_a:
		input.TurnCamera(-KeyStep, 0)
	case sdl.K_d:
		input.TurnCamera(KeyStep, 0)
	}
	return false
}
