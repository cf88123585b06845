package core

// Logger interface for compositor logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Fragment computes the output color for a single pixel of a fullscreen
// pass. Implementations must be pure: no shared mutable state, no ordering
// dependency between invocations. The pass invokes it once per output pixel
// from multiple goroutines concurrently.
type Fragment interface {
	Fragment(uv Vec2) Color
}
