// Package main imports an item catalog JSON file into the SQLite catalog store.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/eloibahuet/egypt-adventures/internal/platform/config"
	i18ncatalog "github.com/eloibahuet/egypt-adventures/internal/platform/i18n/catalog"
	catalogimporter "github.com/eloibahuet/egypt-adventures/internal/tools/importer/catalog"
)

func main() {
	cfg, err := catalogimporter.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	if err := catalogimporter.Run(context.Background(), cfg, os.Stdout); err != nil {
		config.ExitError("Error", i18ncatalog.BaseLocale, err)
	}
}
