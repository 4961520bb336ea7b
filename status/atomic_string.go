package status

import "sync/atomic"

// MaxStringLen truncates stored strings, metric values are short labels
const MaxStringLen = 32

// AtomicString holds a short label such as the simulation state name
// Zero value reads as ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the label, truncated to MaxStringLen bytes
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	s.ptr.Store(&val)
}

// Load returns the current label
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
