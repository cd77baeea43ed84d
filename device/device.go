// Package device opens the window and OpenGL context the viewer renders into.
package device

// Info describes the driver behind a context
type Info struct {
	Vendor          string `json:"vendor"`
	Renderer        string `json:"renderer"`
	Version         string `json:"version"`
	ShadingLanguage string `json:"shadingLanguage"`
}

// Device describes a window with a rendering context
// that is current on the creating thread
type Device interface {
	// Info returns the driver description
	Info() Info

	// DrawableSize returns the size of the drawable in pixels
	DrawableSize() (int, int)

	// Swap presents the back buffer
	Swap() error

	// Destroy closes the window and the context
	Destroy()
}
