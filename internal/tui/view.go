package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/headergen/internal/format"
	"github.com/agbru/headergen/internal/progress"
)

// View renders the whole dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	width := max(minPanelWidth, m.width-2)
	sections := []string{
		m.headerView(),
		m.panel("Jobs", m.jobsView(), width),
		m.panel("System", m.systemView(), width),
		m.panel("Log", m.logsView(), width),
		m.help.View(m.keymap),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) panel(title, body string, width int) string {
	content := m.styles.title.Render(title) + "\n" + body
	return m.styles.panel.Width(width - 2).Render(content)
}

func (m Model) headerView() string {
	elapsed := m.elapsed
	if !m.done {
		elapsed = time.Since(m.startTime)
	}
	status := m.styles.warning.Render("running")
	switch {
	case m.done && m.err != nil:
		status = m.styles.failure.Render("failed")
	case m.done:
		status = m.styles.success.Render("done")
	}
	parts := []string{
		m.styles.title.Render("headergen " + m.version),
		m.styles.label.Render("mode ") + m.styles.value.Render(m.cfg.Mode),
		m.styles.label.Render("headers ") + m.styles.value.Render(format.FormatCount(m.cfg.Quantity())),
		m.styles.label.Render("elapsed ") + m.styles.value.Render(format.FormatExecutionDuration(elapsed.Truncate(time.Millisecond))),
		status,
	}
	return strings.Join(parts, m.styles.dim.Render("  │  "))
}

func (m Model) jobsView() string {
	if len(m.jobs) == 0 {
		return m.styles.dim.Render("waiting for jobs...")
	}
	lines := make([]string, 0, len(m.jobs)+1)
	for _, row := range m.jobs {
		label := fmt.Sprintf("%-*s", jobLabelWidth, truncate(row.label, jobLabelWidth))
		counts := fmt.Sprintf("%d/%d", row.completed, row.total)
		lines = append(lines, fmt.Sprintf("%s %s %s %s",
			m.styles.value.Render(label),
			m.bar.ViewAs(row.value),
			m.styles.label.Render(fmt.Sprintf("%13s", counts)),
			m.rowStatus(row)))
	}
	eta := "ETA " + format.FormatETA(m.eta)
	if m.done {
		eta = ""
	}
	lines = append(lines, fmt.Sprintf("%s %s %s",
		m.styles.title.Render(fmt.Sprintf("%-*s", jobLabelWidth, "overall")),
		m.bar.ViewAs(m.average),
		m.styles.label.Render(fmt.Sprintf("%6.2f%% %s", m.average*100, eta))))
	return strings.Join(lines, "\n")
}

func (m Model) rowStatus(row jobRow) string {
	switch {
	case row.finished && row.state == progress.KindError:
		return m.styles.failure.Render("✗")
	case row.finished:
		return m.styles.success.Render("✓")
	default:
		return m.styles.dim.Render("…")
	}
}

func (m Model) systemView() string {
	sparkWidth := max(10, min(sparkSamples, m.width-30))
	return strings.Join([]string{
		fmt.Sprintf("%s %s %s",
			m.styles.label.Render("CPU"),
			m.styles.value.Render(Sparkline(m.cpu.Values(), sparkWidth)),
			m.styles.value.Render(fmt.Sprintf("%5.1f%%", m.cpu.Last()))),
		fmt.Sprintf("%s %s %s",
			m.styles.label.Render("MEM"),
			m.styles.value.Render(Sparkline(m.mem.Values(), sparkWidth)),
			m.styles.value.Render(fmt.Sprintf("%5.1f%%", m.mem.Last()))),
		fmt.Sprintf("%s %s  %s %d  %s %d",
			m.styles.label.Render("heap"),
			m.styles.value.Render(formatBytes(m.heapAlloc)),
			m.styles.label.Render("gc"), m.numGC,
			m.styles.label.Render("goroutines"), m.goroutines),
	}, "\n")
}

func (m Model) logsView() string {
	h := m.logHeight()
	end := len(m.logs) - m.logOffset
	start := max(0, end-h)
	visible := m.logs[start:max(start, end)]
	lines := make([]string, h)
	for i := range lines {
		if i < len(visible) {
			lines[i] = truncate(visible[i], max(10, m.width-6))
		}
	}
	return m.styles.value.Render(strings.Join(lines, "\n"))
}

// logHeight is what remains of the terminal once the other panels are drawn.
func (m Model) logHeight() int {
	// header, help and three panel frames with titles
	used := 1 + 1 + 3*3 + len(m.jobs) + 1 + 3
	return max(3, m.height-used)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
