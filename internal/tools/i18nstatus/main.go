// Package main reports translation coverage of the embedded message catalogs.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	i18ncatalog "github.com/eloibahuet/egypt-adventures/internal/platform/i18n/catalog"
)

var errUnhealthy = errors.New("catalogs have missing keys or verb mismatches")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("i18nstatus", flag.ContinueOnError)
	baseLocale := fs.String("base-locale", i18ncatalog.BaseLocale, "base locale used as translation source of truth")
	markdownOut := fs.String("out", "docs/i18n-status.md", "markdown output path")
	jsonOut := fs.String("json-out", "docs/i18n-status.json", "json output path")
	check := fs.Bool("check", false, "only validate catalogs and fail on missing keys or verb mismatches")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bundle, err := i18ncatalog.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("load i18n catalogs: %w", err)
	}
	if !bundle.HasLocale(*baseLocale) {
		return fmt.Errorf("base locale %q is missing from catalogs", *baseLocale)
	}

	rep := buildReport(bundle, *baseLocale)
	if *check {
		if !rep.healthy() {
			fmt.Fprint(out, renderMarkdown(rep))
			return errUnhealthy
		}
		fmt.Fprintf(out, "catalogs ok: %d locale(s)\n", len(rep.Locales))
		return nil
	}

	if err := writeJSON(*jsonOut, rep); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	if err := writeMarkdown(*markdownOut, rep); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	fmt.Fprintf(out, "wrote %s and %s\n", *markdownOut, *jsonOut)
	return nil
}
