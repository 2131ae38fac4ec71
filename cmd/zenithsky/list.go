package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/spacehole-rogue/zenith_sky/internal/world"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5dade2")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	zenithStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#85c1e9"))
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [payload]",
		Short: "Print the normalized objects of a payload",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := a.loadPayload(a.payloadPath(args))
			if err != nil {
				return err
			}
			writeSkyTable(cmd.OutOrStdout(), world.Normalize(payload, a.log))
			return nil
		},
	}
}

// writeSkyTable prints the objects brightest first, with their draw position.
func writeSkyTable(w io.Writer, s *world.Sky) {
	order := s.DrawOrder()
	rank := make(map[world.ObjectID]int, len(order))
	for i, id := range order {
		rank[id] = i + 1
	}

	zenithRows := map[int]bool{}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Draw", "Name", "Type", "Mag", "Color", "Zenith dist", "Priority", "Zenith")

	ids := slices.Clone(order)
	slices.Reverse(ids)
	for row, id := range ids {
		obj := s.Object(id)
		zenith := ""
		if s.IsZenith(id) {
			zenith = "*"
			zenithRows[row] = true
		}
		t.Row(
			fmt.Sprint(rank[id]),
			obj.Name,
			obj.Type.Label(),
			fmt.Sprintf("%.2f", obj.Magnitude),
			obj.ColorName,
			fmt.Sprintf("%.1f", obj.DistanceToZenith),
			fmt.Sprintf("%.0f", obj.Priority),
			zenith,
		)
	}
	t.StyleFunc(func(row, _ int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case zenithRows[row]:
			return zenithStyle
		default:
			return cellStyle
		}
	})

	name := s.ZenithName
	if name == "" {
		name = "none"
	}
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%d objects, zenith reference: %s", s.Len(), name)))
	fmt.Fprintln(w, t.Render())
}
