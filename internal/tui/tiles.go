package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/samber/lo"

	"github.com/AG66666678/lookcc/internal/core"
)

const (
	tileOuterWidth = 38
	tileGapH       = 1
)

// tileCols returns how many tiles fit in one row at the given width.
func tileCols(w, n int) int {
	cols := (w - 1) / (tileOuterWidth + tileGapH)
	if cols < 1 {
		cols = 1
	}
	if n > 0 && cols > n {
		cols = n
	}
	return cols
}

func (m Model) renderTiles(w, h int) string {
	if len(m.order) == 0 {
		empty := []string{
			"",
			dimStyle.Render("  No accounts configured."),
			"",
			labelStyle.Render("  Add accounts to ~/.config/lookcc/settings.json"),
			labelStyle.Render("  or export a gateway key and restart."),
		}
		return padToSize(strings.Join(empty, "\n"), w, h)
	}

	cols := tileCols(w, len(m.order))

	tiles := make([]string, 0, len(m.order))
	for i, id := range m.order {
		tiles = append(tiles, m.renderTile(id, i == m.cursor))
	}

	var rows []string
	for _, rowTiles := range lo.Chunk(tiles, cols) {
		row := lipgloss.JoinHorizontal(lipgloss.Top, intersperse(rowTiles, strings.Repeat(" ", tileGapH))...)
		rows = append(rows, row)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return padToSize(content, w, h)
}

func (m Model) renderTile(id string, selected bool) string {
	innerW := tileOuterWidth - 4 // borders and padding

	rec, hasRec := m.records[id]

	nameStyle := tileNameStyle
	if selected {
		nameStyle = tileNameSelectedStyle
	}

	lines := []string{
		nameStyle.Render(truncateToWidth(m.accountName(id), innerW)),
		dimSep(innerW),
	}

	switch {
	case !hasRec:
		lines = append(lines, m.pendingLine(id, innerW))
	case !rec.OK():
		lines = append(lines,
			rowLine("Backend", backendBadge(rec.Backend), innerW),
			errorStyle.Render(truncateToWidth("✗ "+rec.Error, innerW)),
		)
	default:
		lines = append(lines,
			rowLine("Backend", backendBadge(rec.Backend), innerW),
			rowLine("Today", valueStyle.Render(formatUSD(rec.TodayUsed)), innerW),
			rowLine("This month", valueStyle.Render(formatUSD(rec.MonthUsed)), innerW),
			rowLine("Total used", valueStyle.Render(formatUSD(rec.TotalUsed)), innerW),
		)
		if rec.Unlimited() {
			lines = append(lines, rowLine("Remaining", tealStyle.Render("no limit"), innerW))
		} else {
			lines = append(lines,
				rowLine("Remaining", valueStyle.Render(formatUSD(rec.Remaining)+" of "+formatUSD(rec.Total)), innerW),
				RenderGauge(rec.RemainingFraction()*100, innerW-7, m.warnThreshold, m.critThreshold),
			)
		}
	}

	lines = append(lines, dimSep(innerW), m.tileFooter(id, rec, hasRec, innerW))

	style := tileStyle
	if selected {
		style = tileSelectedStyle
	}
	return style.Width(tileOuterWidth - 2).Render(strings.Join(lines, "\n"))
}

// pendingLine fills the tile body before the first record arrives.
func (m Model) pendingLine(id string, w int) string {
	if bt, ok := m.probing[id]; ok {
		return truncateToWidth(m.spinner.View()+" probing "+string(bt), w)
	}
	return dimStyle.Render(truncateToWidth("waiting for first refresh", w))
}

func (m Model) tileFooter(id string, rec core.UsageRecord, hasRec bool, w int) string {
	if bt, ok := m.probing[id]; ok {
		return truncateToWidth(m.spinner.View()+" "+string(bt), w)
	}
	if !hasRec || rec.Timestamp.IsZero() {
		return ""
	}
	age := time.Since(rec.Timestamp)
	if age > time.Minute {
		return dimStyle.Render(formatAge(age) + " ago")
	}
	return dimStyle.Render(rec.Timestamp.Format("15:04:05"))
}

// rowLine lays out a label on the left and a pre-styled value on the right.
func rowLine(label, value string, w int) string {
	l := labelStyle.Render(label)
	gap := w - ansi.StringWidth(l) - ansi.StringWidth(value)
	if gap < 1 {
		gap = 1
	}
	return l + strings.Repeat(" ", gap) + value
}

func dimSep(w int) string {
	return gaugeTrackStyle.Render(strings.Repeat("─", w))
}

func formatUSD(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func formatAge(d time.Duration) string {
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}

func truncateToWidth(s string, maxW int) string {
	if maxW <= 0 || ansi.StringWidth(s) <= maxW {
		return s
	}
	return ansi.Truncate(s, maxW, "…")
}

func padToSize(content string, w, h int) string {
	lines := strings.Split(content, "\n")
	for len(lines) < h {
		lines = append(lines, "")
	}
	if len(lines) > h {
		lines = lines[:h]
	}
	return strings.Join(lines, "\n")
}

func intersperse(items []string, sep string) []string {
	if len(items) <= 1 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}

func clamp(val, low, high int) int {
	if val < low {
		return low
	}
	if val > high {
		return high
	}
	return val
}
