package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openmaturity/maturity/internal/catalog"
	"github.com/openmaturity/maturity/internal/db"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:           "maturity",
		Short:         "Assess DevOps maturity against a weighted criteria catalog",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newCheckCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newInitDBCmd())
	root.AddCommand(newExportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode keeps the error taxonomy visible to shell callers: configuration
// problems and storage integrity failures exit differently.
func exitCode(err error) int {
	if _, ok := catalog.AsConfigError(err); ok {
		return 2
	}
	if _, ok := db.AsIntegrityError(err); ok {
		return 3
	}
	return 1
}

// loadCatalog resolves the catalog source: an explicit path when given,
// otherwise the conventional discovery chain.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path != "" {
		return catalog.Load(path)
	}
	return catalog.LoadDefault()
}
