package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ecometer/ecometer/internal/engine"
	"github.com/ecometer/ecometer/internal/engine/consensus"
)

// Grade badge colors, best to worst. Indexed by band rank; ranks past the
// end reuse the last color.
var gradeColors = []string{
	"#1a9850", // A+
	"#66bd63", // A
	"#a6d96a", // B
	"#fee08b", // C
	"#fdae61", // D
	"#f46d43", // E
	"#d73027", // F
	"#a50026", // G
}

var (
	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Faint(true).Width(22)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fdae61"))
)

// GradeBadge renders the colored grade badge for a grade at the given band
// rank.
func GradeBadge(grade consensus.Grade, rank int) string {
	color := gradeColors[len(gradeColors)-1]
	if rank >= 0 && rank < len(gradeColors) {
		color = gradeColors[rank]
	}
	return badgeStyle.Background(lipgloss.Color(color)).Render(string(grade))
}

// Estimate renders the full score card for one estimate.
func Estimate(est *engine.Estimate, bander *consensus.Bander) string {
	c := est.Consensus
	rank, _ := bander.Rank(c.Grade)

	var b strings.Builder
	b.WriteString(titleStyle.Render(est.Title))
	b.WriteString("  ")
	b.WriteString(GradeBadge(c.Grade, rank))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("Estimated footprint", FormatCO2(c.RuleCO2Kg))
	row("Confidence", FormatPercent(c.Confidence))

	secondaries := make([]string, 0, len(est.Material.Secondaries))
	for _, s := range est.Material.Secondaries {
		secondaries = append(secondaries, s.Name)
	}
	materialLine := est.Material.Primary
	if len(secondaries) > 0 {
		materialLine += " (+" + strings.Join(secondaries, ", ") + ")"
	}
	row("Material", fmt.Sprintf("%s, tier %d, %s confident",
		materialLine, est.Material.Tier, FormatPercent(est.Material.Confidence)))

	row("Route", fmt.Sprintf("%s by %s", FormatDistance(est.Route.DistanceKm), est.Route.Mode))

	weight := fmt.Sprintf("%.2f kg", est.WeightKg)
	if est.WeightAssumed {
		weight += warnStyle.Render(" (assumed)")
	}
	row("Weight", weight)

	b.WriteString("\n")
	row("  material emissions", FormatCO2(c.Explanation.MaterialEmissionKg))
	row("  transport emissions", FormatCO2(c.Explanation.TransportEmissionKg))

	if len(c.Ballots) > 0 {
		b.WriteString("\n")
		for _, ballot := range c.Ballots {
			verdict := "agrees"
			for _, m := range c.Explanation.ModelsDisagreed {
				if m == ballot.Model {
					verdict = fmt.Sprintf("disagrees (%s)", ballot.Grade)
				}
			}
			row("  model "+ballot.Model, fmt.Sprintf("%s, %s confident", verdict, FormatPercent(ballot.Confidence)))
		}
		if !c.Agreement {
			b.WriteString(warnStyle.Render("  sources disagree; consensus grade shown"))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// BatchSummary renders the closing line for a batch run: counts per grade
// plus failures.
func BatchSummary(items []engine.BatchItem, bander *consensus.Bander) string {
	counts := make(map[consensus.Grade]int)
	failed := 0
	for _, it := range items {
		if it.Err != nil {
			failed++
			continue
		}
		counts[it.Estimate.Consensus.Grade]++
	}

	parts := make([]string, 0, len(counts)+1)
	for rank, g := range bander.Grades() {
		if n := counts[g]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s ×%d", GradeBadge(g, rank), n))
		}
	}
	line := fmt.Sprintf("%d scored", len(items)-failed)
	if len(parts) > 0 {
		line += ": " + strings.Join(parts, "  ")
	}
	if failed > 0 {
		line += warnStyle.Render(fmt.Sprintf("  (%d failed)", failed))
	}
	return line
}
