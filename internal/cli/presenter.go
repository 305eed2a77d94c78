package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"unicode/utf8"

	"github.com/agbru/headergen/internal/format"
	"github.com/agbru/headergen/internal/orchestration"
	"github.com/agbru/headergen/internal/ui"
)

// CLISummaryPresenter renders the run summary as a table.
type CLISummaryPresenter struct{}

var _ orchestration.SummaryPresenter = CLISummaryPresenter{}

// PresentSummary prints one row per job followed by the overall status.
// Padding is computed on the plain text so ANSI codes do not skew columns.
func (CLISummaryPresenter) PresentSummary(summary orchestration.RunSummary, out io.Writer) {
	fmt.Fprintf(out, "\n--- Run Summary ---\n")

	headers := []string{"Group", "Range", "Files", "Duration"}
	rows := make([][]string, len(summary.Jobs))
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for i, r := range summary.Jobs {
		rows[i] = []string{r.Job.Group, r.Job.Range.String(), format.FormatCount(r.Files), format.FormatExecutionDuration(r.Duration)}
		for c, cell := range rows[i] {
			widths[c] = max(widths[c], utf8.RuneCountInString(cell))
		}
	}

	for c, h := range headers {
		fmt.Fprintf(out, "%s%s%s%s   ", ui.ColorUnderline(), h, ui.ColorReset(), padRight("", widths[c]-len(h)))
	}
	fmt.Fprintf(out, "%sStatus%s\n", ui.ColorUnderline(), ui.ColorReset())

	colors := []func() string{ui.ColorPrimary, ui.ColorSecondary, ui.ColorReset, ui.ColorWarning}
	for i, row := range rows {
		for c, cell := range row {
			fmt.Fprintf(out, "%s%s%s%s   ", colors[c](), cell, ui.ColorReset(), padRight("", widths[c]-utf8.RuneCountInString(cell)))
		}
		fmt.Fprintln(out, FormatStatus(summary.Jobs[i].Err))
	}

	fmt.Fprintln(out)
	if summary.Err != nil {
		fmt.Fprintf(out, "%sRun failed:%s %d of %d jobs failed, %s files written in %s.\n",
			ui.ColorError(), ui.ColorReset(), summary.Failed, len(summary.Jobs),
			format.FormatCount(summary.Files), format.FormatExecutionDuration(summary.Elapsed))
		return
	}
	fmt.Fprintf(out, "Generated %d header files per preset in %s.\n", summary.Quantity, displayRoot(summary.OutputRoot))
	fmt.Fprintf(out, "%s%d jobs%s finished in %s.\n", ui.ColorSuccess(), len(summary.Jobs), ui.ColorReset(),
		format.FormatExecutionDuration(summary.Elapsed))
}

// FormatStatus renders a job outcome for the Status column.
func FormatStatus(err error) string {
	if err != nil {
		return fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorError(), err, ui.ColorReset())
	}
	return fmt.Sprintf("%s✅ Success%s", ui.ColorSuccess(), ui.ColorReset())
}

// displayRoot prefers the absolute path, falling back to root as given.
func displayRoot(root string) string {
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return root
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}
