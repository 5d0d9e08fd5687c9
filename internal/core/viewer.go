package core

// Viewer is a display sink for rendered frames.
type Viewer interface {
	// Show displays the frame.
	Show(f *Frame) error

	// IsOpen reports whether the sink can still display frames.
	IsOpen() bool

	// Close releases the sink. Repeated calls are no-ops.
	Close() error
}

// ViewerFactory acquires a Viewer on first render.
type ViewerFactory func() (Viewer, error)
