package scenario

import (
	"fmt"
	"log"
	"strings"
)

// AssertionMode decides whether a failed expectation stops the scenario.
type AssertionMode int

const (
	// AssertionStrict returns the first failed expectation as an error.
	AssertionStrict AssertionMode = iota
	// AssertionLogOnly logs failed expectations and keeps running.
	AssertionLogOnly
)

// ParseAssertionMode accepts "strict" and "log" (or "log-only").
func ParseAssertionMode(value string) (AssertionMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "strict":
		return AssertionStrict, nil
	case "log", "log-only", "log_only":
		return AssertionLogOnly, nil
	default:
		return AssertionStrict, fmt.Errorf("unknown assertion mode %q", value)
	}
}

func (m AssertionMode) String() string {
	if m == AssertionLogOnly {
		return "log"
	}
	return "strict"
}

// Assertions reports scenario failures according to Mode.
type Assertions struct {
	Mode   AssertionMode
	Logger *log.Logger
	failed int
}

// Failf always returns an error. Use it for broken scripts, not expectations.
func (a *Assertions) Failf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Assertf reports a failed expectation. In log-only mode it logs and
// returns nil.
func (a *Assertions) Assertf(format string, args ...any) error {
	a.failed++
	if a.Mode == AssertionLogOnly {
		if a.Logger != nil {
			a.Logger.Printf("assertion failed: "+format, args...)
		}
		return nil
	}
	return fmt.Errorf(format, args...)
}

// Failed returns the number of failed expectations so far.
func (a *Assertions) Failed() int {
	return a.failed
}
