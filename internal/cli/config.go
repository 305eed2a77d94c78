package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/headergen/internal/config"
	"github.com/agbru/headergen/internal/format"
	"github.com/agbru/headergen/internal/ui"
)

// PrintRunConfig displays the run's configuration before it starts.
func PrintRunConfig(cfg config.AppConfig, groups []string, out io.Writer) {
	fmt.Fprintf(out, "--- Run Configuration ---\n")
	fmt.Fprintf(out, "Generating %s%s%s files per group (%s mode) into %s%s%s.\n",
		ui.ColorPrimary(), format.FormatCount(cfg.Quantity()), ui.ColorReset(), cfg.Mode,
		ui.ColorSecondary(), cfg.OutputDir, ui.ColorReset())
	fmt.Fprintf(out, "Groups (%d): %s\n", len(groups), strings.Join(groups, ", "))
	fmt.Fprintf(out, "Workers: %s%d%s for the all group, on %d logical processors, Go %s.\n",
		ui.ColorInfo(), cfg.Workers, ui.ColorReset(), runtime.NumCPU(), runtime.Version())
	if cfg.FailFast {
		fmt.Fprintf(out, "%sFail-fast enabled:%s the first failure stops every job.\n", ui.ColorWarning(), ui.ColorReset())
	}
	if cfg.Timeout > 0 {
		fmt.Fprintf(out, "Timeout: %s.\n", cfg.Timeout)
	}
	fmt.Fprintf(out, "\n--- Starting Run ---\n")
}
