package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/ltd/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary values
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+styleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+value)
}

// =============================================================================
// Run Summary
// =============================================================================

// printSummary prints the run summary: topology shape, demand placement,
// refinement and the resulting maximum load.
func printSummary(w io.Writer, res *pipeline.Result) {
	status := styleComputed.Render(iconFresh)
	if res.CacheHit {
		status = styleCached.Render(iconCached)
	}
	fmt.Fprintln(w, styleTitle.Render(string(res.Mode))+styleDim.Render(" · ")+status)

	s := res.Stats
	printKeyValue(w, "nodes", styleNumber.Render(strconv.Itoa(s.Nodes)))
	printKeyValue(w, "links", styleNumber.Render(strconv.Itoa(s.Links))+
		styleDim.Render(fmt.Sprintf(" (max in %d, out %d)", s.MaxInDegree, s.MaxOutDegree)))
	if res.Start >= 0 {
		printKeyValue(w, "start", styleValue.Render(strconv.Itoa(int(res.Start))))
	}

	e := res.Embedding
	parts := []string{
		fmt.Sprintf("%d cycle", e.Consumed),
		fmt.Sprintf("%d direct", e.Direct),
		fmt.Sprintf("%d routed", e.Routed),
	}
	printKeyValue(w, "demands", styleValue.Render(strings.Join(parts, ", "))+
		styleDim.Render(fmt.Sprintf(" (longest %d hops)", e.MaxHops)))

	if len(res.Steps) > 0 {
		value := styleValue.Render(fmt.Sprintf("%d steps", len(res.Steps)))
		if s.Skipped > 0 {
			value += " " + styleWarning.Render(fmt.Sprintf("%d without detour", s.Skipped))
		}
		printKeyValue(w, "refinement", value)
	}

	printKeyValue(w, "max load", styleNumber.Render(strconv.FormatFloat(res.MaxLoad, 'f', 4, 64)))
	if !res.CacheHit {
		printKeyValue(w, "time", styleDim.Render(s.Total().Round(time.Millisecond).String()))
	}
}
