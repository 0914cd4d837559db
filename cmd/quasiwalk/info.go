package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gwillem/quasiwalk/pkg/config"
	"github.com/gwillem/quasiwalk/pkg/gait"
	"github.com/gwillem/quasiwalk/pkg/math3d"
	"github.com/gwillem/quasiwalk/pkg/robot"
)

type InfoCommand struct {
	Config string `long:"config" short:"c" default:"quasiwalk.yaml" description:"Configuration file"`
}

func (c *InfoCommand) Execute(args []string) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	h := newHumanoid(cfg)
	ctx := context.Background()

	fmt.Println(headerStyle.Render("quasiwalk"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━"))
	fmt.Println()

	timing := cfg.Gait.Timing
	rows := make([][]string, 0, 5)
	for _, p := range gait.Phases() {
		rows = append(rows, []string{p.String(), formatSeconds(timing.Of(p))})
	}
	rows = append(rows, []string{"cycle", formatSeconds(timing.Cycle())})
	fmt.Println(newTable("phase", "duration").Rows(rows...).Render())

	fmt.Printf("robot: %s   foot altitude: %g   ankle gain: %g   time step: %g   steps: %d\n\n",
		h.Name(), cfg.Gait.FootAltitude, cfg.Gait.AnkleGain, cfg.Walk.TimeStep, cfg.Walk.Steps)

	for _, foot := range robot.AllFeet() {
		pose, err := h.FootPose(ctx, foot)
		if err != nil {
			return err
		}
		fmt.Println(headerStyle.Render(string(foot)))
		fmt.Println(poseTable(pose).Render())
	}

	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(headers...)
}

// poseTable renders a homogeneous matrix as a 4x4 grid.
func poseTable(p math3d.Pose) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle)
	for _, row := range p {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = strconv.FormatFloat(v, 'g', 4, 64)
		}
		t.Row(cells...)
	}
	return t
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 2, 64) + "s"
}
