package panels

import (
	"fmt"
	"strings"

	"keymatrix/internal/layout"
	"keymatrix/internal/matrix"
)

// formatReport renders a validation report as panel text.
func formatReport(r matrix.Report) string {
	var b strings.Builder

	if r.IsValid {
		b.WriteString("Matrix valid")
	} else {
		fmt.Fprintf(&b, "%d duplicate positions", len(r.DuplicatesWithoutOption))
	}

	for _, pk := range r.DuplicatesWithoutOption {
		fmt.Fprintf(&b, "\n%d,%d: %s", pk.Position.Row, pk.Position.Col, keyNames(pk.Keys))
	}
	if len(r.ValidLayoutOptions) > 0 {
		fmt.Fprintf(&b, "\n%d layout-option positions", len(r.ValidLayoutOptions))
	}
	return b.String()
}

// keyNames summarizes keys by their center legend, falling back to
// position for blank caps.
func keyNames(keys []*layout.Key) string {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		name := k.Labels[layout.SlotCenterLegend]
		if name == "" {
			c := k.Center()
			name = fmt.Sprintf("(%.3g, %.3g)", c.X, c.Y)
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}
