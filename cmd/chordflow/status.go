package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/lixenwraith/chordflow/config"
	"github.com/lixenwraith/chordflow/generation"
	"github.com/lixenwraith/chordflow/metrics"
)

// statusLine summarizes generation, rendering and the latest advisory on one line
func statusLine(cfg config.Configuration, p generation.Progress, m metrics.RenderMetricsSnapshot, notice string) string {
	var b strings.Builder
	switch p.Status {
	case generation.StatusRunning:
		fmt.Fprintf(&b, "generating %d/%d (%.0f%%)", p.ChordsProcessed, p.ChordsTotal, p.Fraction()*100)
	default:
		fmt.Fprintf(&b, "%s", p.Status)
	}
	fmt.Fprintf(&b, " │ %s particles on %s chords", humanize.Comma(int64(m.TotalParticles)), humanize.Comma(int64(m.ChordsWithParticles)))
	fmt.Fprintf(&b, " │ %s %.0f fps", m.Backend, m.FPS)
	fmt.Fprintf(&b, " │ %s ×%.2f", cfg.ParticleDistribution, cfg.ParticleDensity)
	if !cfg.ParticleMode {
		b.WriteString(" │ particles off")
	}
	if notice != "" {
		b.WriteString(" │ ")
		b.WriteString(notice)
	}
	return b.String()
}
