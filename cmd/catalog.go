package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/dungeontracker/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the catalog of dungeons, towers, events and quests",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "List every item and its point value",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogShow,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a catalog document for errors",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogValidate,
}

func init() {
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	rootCmd.AddCommand(catalogCmd)
}

// catalogPath picks the file argument, then the configured path. Empty
// means the built-in catalog.
func catalogPath(configured string, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return configured
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := newPrinter(cmd, cfg, false)

	c, err := loadCatalog(catalogPath(cfg.CatalogPath, args))
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	printer.Catalog(c)
	return nil
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := newPrinter(cmd, cfg, false)

	path := catalogPath(cfg.CatalogPath, args)
	name := "built-in"
	var spec catalog.Spec
	if path == "" {
		spec, err = catalog.DefaultSpec()
	} else {
		name = filepath.Base(path)
		spec, err = catalog.LoadSpec(path)
	}
	if err != nil {
		printer.Error(err.Error())
		return err
	}

	errs := catalog.Validate(spec)
	printer.ValidateResult(name, spec, errs)
	if len(errs) > 0 {
		return fmt.Errorf("validation failed with %d error(s)", len(errs))
	}
	return nil
}
