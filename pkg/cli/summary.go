package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aviarylab/chirp/pkg/cluster"
)

// Theme defines the color scheme for terminal output.
type Theme struct {
	Primary lipgloss.Color
	Dim     lipgloss.Color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
}

// RunSummary renders a human-readable overview of a clustering result:
// how many snippets survived validation, how they distributed over
// clusters, and how many were rejected as noise.
func RunSummary(res *cluster.Result, batchSize int, theme Theme) string {
	label := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	dim := lipgloss.NewStyle().Foreground(theme.Dim)

	sizes := make(map[int]int)
	for _, l := range res.ClusterLabels {
		if l >= 0 {
			sizes[l]++
		}
	}
	order := make([]int, 0, len(sizes))
	for l := range sizes {
		order = append(order, l)
	}
	sort.Ints(order)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d/%d snippets valid\n", label.Render("batch:"), len(res.ValidIndices), batchSize)
	fmt.Fprintf(&b, "%s %d", label.Render("clusters:"), res.TotalClusters)
	if len(order) > 0 {
		parts := make([]string, 0, len(order))
		for _, l := range order {
			parts = append(parts, fmt.Sprintf("#%d×%d", l, sizes[l]))
		}
		fmt.Fprintf(&b, " %s", dim.Render("("+strings.Join(parts, " ")+")"))
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%s %d\n", label.Render("noise:"), res.NoisePoints)
	return b.String()
}
