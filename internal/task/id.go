package task

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	nanoid "github.com/jaevor/go-nanoid"
)

const (
	base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffixLength   = 11
)

// IDGenerator produces task identifiers.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

// NewID calls f.
func (f IDGeneratorFunc) NewID() string { return f() }

// TimeRandomIDs builds ids from the base-36 millisecond clock followed by a
// random base-36 suffix.
type TimeRandomIDs struct {
	now    func() time.Time
	suffix func() string
}

// NewTimeRandomIDs returns the default generator.
func NewTimeRandomIDs() (*TimeRandomIDs, error) {
	suffix, err := nanoid.CustomASCII(base36Alphabet, suffixLength)
	if err != nil {
		return nil, fmt.Errorf("init id suffix generator: %w", err)
	}
	return &TimeRandomIDs{now: time.Now, suffix: suffix}, nil
}

// NewID returns a fresh identifier.
func (g *TimeRandomIDs) NewID() string {
	return strconv.FormatInt(g.now().UnixMilli(), 36) + g.suffix()
}

// UUIDs generates random (version 4) UUID strings.
type UUIDs struct{}

// NewID returns a fresh UUID string.
func (UUIDs) NewID() string {
	return uuid.NewString()
}

// Scheme names accepted by NewIDGenerator.
const (
	SchemeTimeRandom = "time-random"
	SchemeUUID       = "uuid"
)

// NewIDGenerator returns the generator for a configured scheme.
func NewIDGenerator(scheme string) (IDGenerator, error) {
	switch scheme {
	case "", SchemeTimeRandom:
		return NewTimeRandomIDs()
	case SchemeUUID:
		return UUIDs{}, nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q", scheme)
	}
}
