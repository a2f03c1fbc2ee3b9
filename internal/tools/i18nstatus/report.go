package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	i18ncatalog "github.com/eloibahuet/egypt-adventures/internal/platform/i18n/catalog"
)

type report struct {
	BaseLocale string         `json:"base_locale"`
	Locales    []localeStatus `json:"locales"`
}

type localeStatus struct {
	Locale         string            `json:"locale"`
	BaseKeys       int               `json:"base_keys"`
	Translated     int               `json:"translated"`
	Missing        int               `json:"missing"`
	Extra          int               `json:"extra"`
	Completion     float64           `json:"completion"`
	Namespaces     []namespaceStatus `json:"namespaces"`
	MissingKeys    []string          `json:"missing_keys"`
	ExtraKeys      []string          `json:"extra_keys"`
	VerbMismatches []verbMismatch    `json:"verb_mismatches"`
}

type namespaceStatus struct {
	Namespace  string  `json:"namespace"`
	BaseKeys   int     `json:"base_keys"`
	Translated int     `json:"translated"`
	Missing    int     `json:"missing"`
	Extra      int     `json:"extra"`
	Completion float64 `json:"completion"`
}

// verbMismatch is a translated message whose printf verbs differ from the
// base message. Sprintf would render such a message with %!(...) noise.
type verbMismatch struct {
	Key    string `json:"key"`
	Base   string `json:"base"`
	Locale string `json:"locale"`
}

// healthy reports whether every locale covers the base keys with matching verbs.
func (r report) healthy() bool {
	for _, locale := range r.Locales {
		if locale.Missing > 0 || len(locale.VerbMismatches) > 0 {
			return false
		}
	}
	return true
}

func buildReport(bundle *i18ncatalog.Bundle, baseLocale string) report {
	baseMessages := bundle.LocaleMessages(baseLocale)
	baseNamespaces := bundle.Namespaces(baseLocale)

	locales := bundle.Locales()
	statuses := make([]localeStatus, 0, len(locales))
	for _, locale := range locales {
		localeMessages := bundle.LocaleMessages(locale)
		missingKeyList := missingKeys(baseMessages, localeMessages)
		extraKeyList := extraKeys(baseMessages, localeMessages)
		translated := len(baseMessages) - len(missingKeyList)

		namespaceUnion := sortedUnion(baseNamespaces, bundle.Namespaces(locale))
		namespaceStatuses := make([]namespaceStatus, 0, len(namespaceUnion))
		for _, namespace := range namespaceUnion {
			baseNS := bundle.NamespaceMessages(baseLocale, namespace)
			localeNS := bundle.NamespaceMessages(locale, namespace)
			nsMissing := missingKeys(baseNS, localeNS)
			nsExtra := extraKeys(baseNS, localeNS)
			nsTranslated := len(baseNS) - len(nsMissing)
			namespaceStatuses = append(namespaceStatuses, namespaceStatus{
				Namespace:  namespace,
				BaseKeys:   len(baseNS),
				Translated: nsTranslated,
				Missing:    len(nsMissing),
				Extra:      len(nsExtra),
				Completion: percent(nsTranslated, len(baseNS)),
			})
		}

		statuses = append(statuses, localeStatus{
			Locale:         locale,
			BaseKeys:       len(baseMessages),
			Translated:     translated,
			Missing:        len(missingKeyList),
			Extra:          len(extraKeyList),
			Completion:     percent(translated, len(baseMessages)),
			Namespaces:     namespaceStatuses,
			MissingKeys:    missingKeyList,
			ExtraKeys:      extraKeyList,
			VerbMismatches: verbMismatches(baseMessages, localeMessages),
		})
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Locale < statuses[j].Locale
	})

	return report{BaseLocale: baseLocale, Locales: statuses}
}

var printfVerb = regexp.MustCompile(`%[-+# 0]*[0-9]*(?:\.[0-9]+)?[a-zA-Z%]`)

// formatVerbs returns the verb letters of a printf format in order, skipping %%.
func formatVerbs(format string) string {
	var b strings.Builder
	for _, match := range printfVerb.FindAllString(format, -1) {
		verb := match[len(match)-1]
		if verb == '%' {
			continue
		}
		b.WriteByte(verb)
	}
	return b.String()
}

func verbMismatches(base map[string]string, target map[string]string) []verbMismatch {
	out := make([]verbMismatch, 0)
	for key, baseValue := range base {
		value, ok := target[key]
		if !ok {
			continue
		}
		if formatVerbs(baseValue) != formatVerbs(value) {
			out = append(out, verbMismatch{Key: key, Base: baseValue, Locale: value})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func writeJSON(path string, rep report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func renderMarkdown(rep report) string {
	var b strings.Builder
	b.WriteString("# I18n Status\n\n")
	b.WriteString("Generated by `go run ./internal/tools/i18nstatus`.\n\n")
	fmt.Fprintf(&b, "Base locale: `%s`.\n\n", rep.BaseLocale)

	b.WriteString("## Locale Summary\n\n")
	b.WriteString("| Locale | Base Keys | Translated | Missing | Extra | Verb Mismatches | Completion |\n")
	b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: | ---: |\n")
	for _, locale := range rep.Locales {
		fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %d | %d | %.1f%% |\n", locale.Locale, locale.BaseKeys, locale.Translated, locale.Missing, locale.Extra, len(locale.VerbMismatches), locale.Completion)
	}

	for _, locale := range rep.Locales {
		fmt.Fprintf(&b, "\n## Locale: `%s`\n\n", locale.Locale)

		b.WriteString("### Namespace Summary\n\n")
		b.WriteString("| Namespace | Base Keys | Translated | Missing | Extra | Completion |\n")
		b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: |\n")
		for _, ns := range locale.Namespaces {
			fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %d | %.1f%% |\n", ns.Namespace, ns.BaseKeys, ns.Translated, ns.Missing, ns.Extra, ns.Completion)
		}

		writeKeyList(&b, "Missing Keys", locale.MissingKeys)
		writeKeyList(&b, "Extra Keys", locale.ExtraKeys)
		if len(locale.VerbMismatches) > 0 {
			b.WriteString("\n### Verb Mismatches\n\n")
			for _, mismatch := range locale.VerbMismatches {
				fmt.Fprintf(&b, "- `%s`: `%s` vs `%s`\n", mismatch.Key, mismatch.Base, mismatch.Locale)
			}
		}
	}
	return b.String()
}

func writeKeyList(b *strings.Builder, title string, keys []string) {
	if len(keys) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", title)
	for _, key := range keys {
		fmt.Fprintf(b, "- `%s`\n", key)
	}
}

func writeMarkdown(path string, rep report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(renderMarkdown(rep)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func missingKeys(base map[string]string, target map[string]string) []string {
	out := make([]string, 0)
	for key := range base {
		if _, ok := target[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func extraKeys(base map[string]string, target map[string]string) []string {
	return missingKeys(target, base)
}

func sortedUnion(a []string, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, value := range a {
		set[value] = struct{}{}
	}
	for _, value := range b {
		set[value] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for value := range set {
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}

func percent(numerator int, denominator int) float64 {
	if denominator <= 0 {
		return 100
	}
	value := float64(numerator) * 100 / float64(denominator)
	return math.Round(value*10) / 10
}
