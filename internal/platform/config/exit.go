package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	apperrors "github.com/eloibahuet/egypt-adventures/internal/platform/errors"
)

// Exit codes returned by ExitError.
const (
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitPrecondition = 3
)

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	exitf(ExitFailure, format, args...)
}

// ExitError writes the localized message for err to stderr and exits with
// ExitCode(err).
func ExitError(prefix, locale string, err error) {
	exitf(ExitCode(err), "%s: %s", prefix, Describe(locale, err))
}

// ExitCode maps coded domain errors to a process exit code by their kind.
func ExitCode(err error) int {
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		return ExitFailure
	}
	switch domainErr.Code.Kind() {
	case apperrors.KindInvalidInput:
		return ExitInvalidInput
	case apperrors.KindPrecondition:
		return ExitPrecondition
	default:
		return ExitFailure
	}
}

func exitf(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}

// Describe returns the user-facing text for err in locale.
func Describe(locale string, err error) string {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		return domainErr.LocalizedMessage(locale)
	}
	return err.Error()
}

// PrintError writes Describe(locale, err) to w.
func PrintError(w io.Writer, locale string, err error) {
	fmt.Fprintln(w, Describe(locale, err))
}
