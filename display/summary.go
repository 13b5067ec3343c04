package display

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"

	"github.com/Vulkan-FIT/vkcpp-gen/generator"
)

// Report is the outcome of one generate run.
type Report struct {
	Registry string          `json:"registry"`
	Dest     string          `json:"dest"`
	Files    []string        `json:"files"`
	Stats    generator.Stats `json:"stats"`
}

// CheckReport is the outcome of one check run.
type CheckReport struct {
	Dest        string   `json:"dest"`
	UpToDate    bool     `json:"up_to_date"`
	Differences []string `json:"differences,omitempty"`
}

// Summary prints a generate report.
func Summary(w io.Writer, r Report) {
	pterm.Fprintln(w, fmt.Sprintf("%s %s", pterm.LightCyan("Registry:"), r.Registry))
	for _, name := range r.Files {
		pterm.Fprintln(w, fmt.Sprintf("  %s %s", pterm.LightGreen("✓ Wrote"), filepath.Join(r.Dest, name)))
	}

	s := r.Stats
	pterm.Fprintln(w, fmt.Sprintf("%s %s classes, %s procedures, %s suppressed, %s skipped, %s deduplicated in %s",
		pterm.LightCyan("Generated:"),
		pterm.Green(s.Classes),
		pterm.Green(s.Procedures),
		pterm.Yellow(s.Suppressed),
		pterm.Yellow(s.Skipped),
		pterm.Gray(s.Deduped),
		s.Duration.Round(time.Microsecond)))
}

// Check prints a check report.
func Check(w io.Writer, r CheckReport) {
	if r.UpToDate {
		pterm.Fprintln(w, fmt.Sprintf("%s %s", pterm.LightGreen("✓ Up to date:"), r.Dest))
		return
	}
	pterm.Fprintln(w, fmt.Sprintf("%s %s", pterm.Red("✗ Out of date:"), r.Dest))
	for _, d := range r.Differences {
		pterm.Fprintln(w, fmt.Sprintf("  %s %s", pterm.Gray("→"), pterm.Yellow(d)))
	}
	pterm.Fprintln(w, pterm.Gray("run vkgen generate to refresh"))
}
