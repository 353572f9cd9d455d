package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cyclecheck/internal/manifest"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)
)

// FormatCycle renders a cycle as a closed path, repeating the first element
// at the end: "a -> b -> c -> a". IDs resolve to package names when possible
// and fall back to the raw ID, so rendering never fails.
func FormatCycle(cycle []string, meta *manifest.Metadata) string {
	if len(cycle) == 0 {
		return ""
	}

	names := make([]string, 0, len(cycle)+1)
	for _, id := range cycle {
		names = append(names, displayName(id, meta))
	}
	names = append(names, names[0])

	return strings.Join(names, " -> ")
}

func displayName(id string, meta *manifest.Metadata) string {
	if meta != nil {
		if pkg := meta.PackageByID(id); pkg != nil {
			return pkg.Name
		}
	}
	return id
}

// Printer writes the check outcome: the confirmation line to Out, detected
// cycles to Err.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

func NewPrinter() *Printer {
	return &Printer{Out: os.Stdout, Err: os.Stderr}
}

func (p *Printer) Clean() {
	fmt.Fprintln(p.Out, successStyle.Render("No cyclic dependencies found."))
}

func (p *Printer) Cycles(cycles [][]string, meta *manifest.Metadata) {
	fmt.Fprintf(p.Err, "%s\n\n", errorStyle.Render("Error: Cyclic dependencies detected!"))
	for i, cycle := range cycles {
		fmt.Fprintf(p.Err, "Cycle %d:\n", i+1)
		fmt.Fprintf(p.Err, "  %s\n\n", FormatCycle(cycle, meta))
	}
}
