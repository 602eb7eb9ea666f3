package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/harven/cityforge/internal/config"
	"github.com/harven/cityforge/internal/grid"
	"github.com/harven/cityforge/internal/loader"
	"github.com/harven/cityforge/internal/models"
	"github.com/harven/cityforge/internal/sim"
)

var (
	dataDir    string
	configFile string
	quiet      bool
	ticks      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cityforge",
		Short: "City-building economy simulator",
		Long: `A tick-based city economy simulator: construction, resource
transport, production chains, market trades, and the Petra time warp.`,
	}

	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "data", "Path to data directory")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a batch simulation and print a city report",
		Run:   runBatch,
	}
	runCmd.Flags().IntVarP(&ticks, "ticks", "t", 200, "Number of ticks to simulate")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	rootCmd.AddCommand(runCmd, serveCmd(), watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newCity loads everything and assembles a simulated city with the default
// starter layout placed on it.
func newCity(cfg *config.Config) (*sim.Engine, *sim.State, error) {
	definitions, err := loader.LoadBuildings(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading buildings: %w", err)
	}
	values, err := loader.LoadResourceValues(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading resource values: %w", err)
	}

	city, ok := cfg.Cities[cfg.Game.CurrentCity]
	if !ok {
		return nil, nil, fmt.Errorf("city %q is not configured", cfg.Game.CurrentCity)
	}

	engine := sim.NewEngine(definitions, values, cfg.Game.TradeCycleTicks, cfg.Game.Seed)
	state := sim.NewState(city.Size)
	grid.PlaceDeposits(state.Map, city.Layout(cfg.Game.CurrentCity), cfg.Game.Seed)

	if err := placeStarterLayout(engine, state); err != nil {
		return nil, nil, err
	}
	return engine, state, nil
}

// placeStarterLayout drops a small self-sufficient town: extractors on their
// deposits, a production chain, and a stocked warehouse to feed construction.
// The starting quarter of the map is explored up front.
func placeStarterLayout(e *sim.Engine, s *sim.State) error {
	for _, p := range s.Map.SortedPoints() {
		if p.X < s.Map.Size/2 && p.Y < s.Map.Size/2 {
			s.Map.Explore(p)
		}
	}

	free := freeTiles(s)
	next := func() (grid.Point, bool) {
		if len(free) == 0 {
			return grid.Point{}, false
		}
		p := free[0]
		free = free[1:]
		return p, true
	}

	level := 1
	warehouse := models.Descriptor{
		Type:   models.Warehouse,
		Level:  &level,
		Status: models.StatusCompleted,
		Resources: models.ResourceStock{
			models.Wood:  200,
			models.Stone: 200,
			models.Gold:  50,
		},
	}
	plan := []models.Descriptor{
		warehouse,
		{Type: models.WheatFarm},
		{Type: models.LoggingCamp},
		{Type: models.Bakery},
		{Type: models.Market, Market: &models.MarketData{
			SellResources: map[models.ResourceType]bool{models.Bread: true},
		}},
	}

	for _, d := range plan {
		p, ok := next()
		if !ok {
			return fmt.Errorf("no free tile for %s", d.Type)
		}
		if _, err := e.Place(s, d, p); err != nil {
			return err
		}
	}

	// Extractors go wherever their deposit landed
	for _, d := range []models.Descriptor{
		{Type: models.Aqueduct},
		{Type: models.StoneQuarry},
	} {
		def := e.Definitions[d.Type]
		p, ok := depositTile(s, *def.RequiresDeposit)
		if !ok {
			continue
		}
		if _, err := e.Place(s, d, p); err != nil {
			return err
		}
	}
	return nil
}

// freeTiles lists buildable tiles, explored ground first
func freeTiles(s *sim.State) []grid.Point {
	var explored, frontier []grid.Point
	for _, p := range s.Map.SortedPoints() {
		t := s.Map.At(p)
		if t.Occupied() || len(t.Deposits) > 0 {
			continue
		}
		if t.Explored {
			explored = append(explored, p)
		} else {
			frontier = append(frontier, p)
		}
	}
	return append(explored, frontier...)
}

func depositTile(s *sim.State, rt models.ResourceType) (grid.Point, bool) {
	for _, p := range s.Map.SortedPoints() {
		t := s.Map.At(p)
		if t.HasDeposit(rt) && !t.Occupied() {
			return p, true
		}
	}
	return grid.Point{}, false
}

func runBatch(cmd *cobra.Command, args []string) {
	titleColor := color.New(color.FgCyan, color.Bold)
	infoColor := color.New(color.FgYellow)
	successColor := color.New(color.FgGreen, color.Bold)

	if !quiet {
		titleColor.Println("\n╭───────────────────────────╮")
		titleColor.Println("│  CityForge                │")
		titleColor.Println("│  Economy Simulator        │")
		titleColor.Println("╰───────────────────────────╯")
		fmt.Println()
	}

	cfg := config.LoadConfigOrDefault(configFile)
	engine, state, err := newCity(cfg)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	if !quiet {
		infoColor.Printf("🏙  City %q, map %d×%d, %d buildings placed\n\n",
			cfg.Game.CurrentCity, state.Map.Size, state.Map.Size, len(state.Buildings))
		printDeposits(cfg)
	}

	engine.Run(state, ticks)

	successColor.Printf("✓ Simulated %d ticks\n\n", ticks)
	printCityReport(state)
	printStockSummary(state)
}

func printDeposits(cfg *config.Config) {
	infoColor := color.New(color.FgYellow)
	infoColor.Println("⛏  Expected deposit tiles:")

	cities := make(map[string]grid.CityLayout, len(cfg.Cities))
	for id, c := range cfg.Cities {
		cities[id] = c.Layout(id)
	}
	for _, rt := range models.AllDeposits() {
		count := grid.DepositTileCount(rt, cities, cfg.Game.CurrentCity)
		if count > 0 {
			fmt.Printf("   • %s: %d tiles\n", formatName(string(rt)), count)
		}
	}
	fmt.Println()
}

func printCityReport(s *sim.State) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Building", "Level", "Status", "Position", "Stock"}),
	)

	for _, p := range s.Map.SortedPoints() {
		t := s.Map.At(p)
		if !t.Occupied() {
			continue
		}
		b := s.Buildings[t.Building]
		_ = table.Append([]string{
			formatName(string(b.Type)),
			fmt.Sprintf("%d/%d", b.Level, b.DesiredLevel),
			string(b.Status),
			p.String(),
			formatStock(b.Resources),
		})
	}
	_ = table.Render()
}

func printStockSummary(s *sim.State) {
	infoColor := color.New(color.FgCyan)

	total := make(models.ResourceStock)
	for _, b := range s.Buildings {
		for rt, amount := range b.Resources {
			total.Add(rt, amount)
		}
	}

	infoColor.Println("\n📦 City totals:")
	for _, rt := range models.AllResourceTypes() {
		if amount := total.Get(rt); amount > 0 {
			fmt.Printf("   • %s: %.1f\n", formatName(string(rt)), amount)
		}
	}
	if s.WarpBank > 0 {
		fmt.Printf("\n⏳ Warp bank: %.1f ticks\n", s.WarpBank)
	}
}

func formatStock(stock models.ResourceStock) string {
	if len(stock) == 0 {
		return "-"
	}
	var parts []string
	for _, rt := range models.AllResourceTypes() {
		if amount := stock.Get(rt); amount > 0 {
			parts = append(parts, fmt.Sprintf("%s:%.0f", rt, amount))
		}
	}
	return strings.Join(parts, " ")
}

func formatName(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	words := strings.Fields(name)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
