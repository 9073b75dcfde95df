// internal/bench/report.go
package bench

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	sectionStyle = lipgloss.NewStyle().Bold(true)
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Verdict labels for the aggregate pass rate.
const (
	verdictExcellent = "excellent"
	verdictGood      = "good, room for improvement"
	verdictNeedsWork = "needs optimization"
)

// verdict maps a pass rate in percent to its qualitative tier.
func verdict(passRate float64) string {
	switch {
	case passRate >= 80:
		return verdictExcellent
	case passRate >= 60:
		return verdictGood
	default:
		return verdictNeedsWork
	}
}

// passRate computes the share of records that met their target, in
// percent. Records without a target (the startup comparison) are not
// counted.
func (s *Suite) passRate() (passed, total int, rate float64) {
	for _, result := range s.results {
		switch r := result.(type) {
		case Measurement:
			total++
			if r.MeetsTarget {
				passed++
			}
		case SizeMeasurement:
			total++
			if r.MeetsTarget {
				passed++
			}
		}
	}
	if total > 0 {
		rate = float64(passed) / float64(total) * 100
	}
	return passed, total, rate
}

func badge(ok bool) string {
	if ok {
		return passStyle.Render("PASS")
	}
	return failStyle.Render("FAIL")
}

// Report renders the accumulated measurements as a human-readable summary.
func (s *Suite) Report(w io.Writer) {
	fmt.Fprintln(w, headerStyle.Render("target CLI performance report"))
	fmt.Fprintln(w)

	if raw, ok := s.results["binary_size"]; ok {
		if bs, ok := raw.(SizeMeasurement); ok {
			fmt.Fprintln(w, sectionStyle.Render("binary size"))
			fmt.Fprintf(w, "  %s size: %.2f MB (target: <%.0f MB)\n", badge(bs.MeetsTarget), bs.SizeMB, bs.TargetMB)
			fmt.Fprintln(w)
		}
	}

	keys := make([]string, 0, len(s.results))
	for key := range s.results {
		if m, ok := s.results[key].(Measurement); ok && m.Command != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	if len(keys) > 0 {
		fmt.Fprintln(w, sectionStyle.Render("command latency"))
		for _, key := range keys {
			m := s.results[key].(Measurement)
			fmt.Fprintf(w, "  %s %s: %.3fs median (target: <%.1fs)\n", badge(m.MeetsTarget), m.Command, m.MedianTime, m.Target)
			fmt.Fprintf(w, "      %s\n", dimStyle.Render(fmt.Sprintf("range: %.3fs - %.3fs over %d samples", m.MinTime, m.MaxTime, len(m.Samples))))
		}
		fmt.Fprintln(w)
	}

	if raw, ok := s.results["startup_comparison"]; ok {
		if sc, ok := raw.(StartupComparison); ok {
			fmt.Fprintln(w, sectionStyle.Render("startup"))
			fmt.Fprintf(w, "  cold start:  %.3fs\n", sc.ColdStart)
			fmt.Fprintf(w, "  warm start:  %.3fs\n", sc.WarmStartAvg)
			fmt.Fprintf(w, "  improvement: %.3fs\n", sc.Improvement)
			if !sc.Normalized {
				fmt.Fprintf(w, "  %s\n", failStyle.Render("cache purge did not run; cold-start number is unreliable"))
			}
			fmt.Fprintln(w)
		}
	}

	passed, total, rate := s.passRate()
	fmt.Fprintln(w, sectionStyle.Render("overall"))
	fmt.Fprintf(w, "  pass rate: %d/%d (%.1f%%)\n", passed, total, rate)
	fmt.Fprintf(w, "  verdict: %s\n", verdict(rate))
}
