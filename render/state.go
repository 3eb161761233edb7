package render

// Status describes the renderer lifecycle.
//
// A renderer starts Uninitialized. The first Init attempt moves it to
// Ready on success or Degraded on failure. Degraded is terminal: every
// subsequent operation is a logged no-op, and no further initialization
// is attempted.
type Status int

const (
	// StatusUninitialized means Init has not been attempted yet.
	StatusUninitialized Status = iota

	// StatusInitializing means Init is in progress. Init is synchronous,
	// so callers never observe this state from outside.
	StatusInitializing

	// StatusReady means the pipeline and surface are built and the
	// renderer accepts draw commands.
	StatusReady

	// StatusDegraded means initialization failed. The renderer stays in
	// this state for its remaining lifetime.
	StatusDegraded
)

// String returns the status name for logging.
func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusInitializing:
		return "initializing"
	case StatusReady:
		return "ready"
	case StatusDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}
