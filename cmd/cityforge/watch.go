package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/harven/cityforge/internal/config"
	"github.com/harven/cityforge/internal/models"
	"github.com/harven/cityforge/internal/sim"
)

var (
	watchTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	watchHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	watchDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	watchOkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	watchBusyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the city tick in a terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfigOrDefault(configFile)

			engine, state, err := newCity(cfg)
			if err != nil {
				return err
			}
			runner := sim.NewRunner(engine, state, cfg.Game.TickInterval)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go func() { _ = runner.Loop(ctx) }()

			m := watchModel{
				runner: runner,
				city:   cfg.Game.CurrentCity,
				snap:   runner.Snapshot(),
			}
			_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
			return err
		},
	}
}

// watchModel renders runner snapshots; the simulation itself ticks in the
// background loop, the UI only refreshes.
type watchModel struct {
	runner *sim.Runner
	city   string
	snap   *sim.State
}

type refreshMsg struct{}

const refreshInterval = 500 * time.Millisecond

func refreshCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func (m watchModel) Init() tea.Cmd {
	return refreshCmd()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case refreshMsg:
		m.snap = m.runner.Snapshot()
		return m, refreshCmd()
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(watchTitleStyle.Render(fmt.Sprintf("CityForge — %s", formatName(m.city))))
	b.WriteString("\n")
	b.WriteString(watchDimStyle.Render(fmt.Sprintf("tick %d · warp %.1f · q to quit", m.snap.Tick, m.snap.WarpBank)))
	b.WriteString("\n\n")

	b.WriteString(watchHeaderStyle.Render(fmt.Sprintf("%-20s %-7s %-10s %s", "Building", "Level", "Status", "Stock")))
	b.WriteString("\n")
	for _, p := range m.snap.Map.SortedPoints() {
		t := m.snap.Map.At(p)
		if !t.Occupied() {
			continue
		}
		bd := m.snap.Buildings[t.Building]
		// Pad before styling so ANSI codes do not skew the columns
		status := fmt.Sprintf("%-10s", bd.Status)
		styled := watchBusyStyle.Render(status)
		if bd.Status == models.StatusCompleted {
			styled = watchOkStyle.Render(status)
		}
		b.WriteString(fmt.Sprintf("%-20s %-7s %s %s\n",
			formatName(string(bd.Type)),
			fmt.Sprintf("%d/%d", bd.Level, bd.DesiredLevel),
			styled,
			formatStock(bd.Resources),
		))
	}
	return b.String()
}
