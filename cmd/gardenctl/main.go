package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gardenkeeper/internal/catalog"
	"gardenkeeper/internal/config"
	"gardenkeeper/internal/garden"
	"gardenkeeper/internal/logger"
	"gardenkeeper/internal/telemetry"
)

var (
	userFlag string
	rootCmd  = &cobra.Command{
		Use:   "gardenctl",
		Short: "Drive the garden simulation engine from the command line",
	}
)

// newEngine wires config, catalog, store and telemetry the same way any host
// front end would.
func newEngine() (*garden.Engine, telemetry.Repository, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New("gardenctl", cfg.LogLevel)

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load catalog %s: %w", cfg.CatalogPath, err)
		}
	}

	store, err := garden.Open(cfg.DataDir, log)
	if err != nil {
		return nil, nil, err
	}

	events := telemetry.NewMemoryRepository()
	return garden.NewEngine(store, cat, events, log), events, nil
}

func requireUser() (string, error) {
	u := strings.TrimSpace(userFlag)
	if u == "" {
		return "", fmt.Errorf("--user is required")
	}
	return u, nil
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "user id")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "shop",
		Short: "List every purchasable species",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := newEngine()
			if err != nil {
				return err
			}
			for _, sp := range eng.Catalog() {
				fmt.Printf("%s %s - %d coins (%s)\n", sp.Emoji, sp.Name, sp.Cost, sp.Rarity)
			}
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "buy <species>",
		Short: "Buy and plant a species by (partial) name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}
			eng, _, err := newEngine()
			if err != nil {
				return err
			}
			p, err := eng.PlantSeed(user, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("planted %s %s (%s)\n", p.Emoji, p.Name, p.Stage)
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "water <plant>",
		Short: "Water an owned plant by (partial) name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}
			eng, _, err := newEngine()
			if err != nil {
				return err
			}
			p, err := eng.Water(user, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("watered %s %s: health %d growth %d (%s)\n", p.Emoji, p.Name, p.Health, p.Growth, p.Stage)
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "sun <plant>",
		Short: "Give an owned plant sunlight by (partial) name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}
			eng, _, err := newEngine()
			if err != nil {
				return err
			}
			p, err := eng.Sun(user, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("sunned %s %s: health %d growth %d (%s)\n", p.Emoji, p.Name, p.Health, p.Growth, p.Stage)
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "daily",
		Short: "Claim the daily coin reward",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}
			eng, _, err := newEngine()
			if err != nil {
				return err
			}
			balance, err := eng.ClaimDaily(user)
			if err != nil {
				return err
			}
			fmt.Printf("claimed %d coins, balance %d\n", 100, balance)
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "garden",
		Short: "Show the user's garden",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}
			eng, _, err := newEngine()
			if err != nil {
				return err
			}
			g := eng.Garden(user)
			fmt.Printf("level %d  exp %d/%d  coins %d  plants %d\n",
				g.Level, g.Exp, g.Level*100, g.Coins, len(g.Plants))
			for _, p := range g.Plants {
				fmt.Printf("  %s %s (%s) health %d growth %d\n", p.Emoji, p.Name, p.Stage, p.Health, p.Growth)
			}
			return nil
		},
	})

	topCmd := &cobra.Command{
		Use:   "top",
		Short: "Show the gardener leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := cmd.Flags().GetInt("limit")
			eng, _, err := newEngine()
			if err != nil {
				return err
			}
			for i, entry := range eng.TopRanked(n) {
				fmt.Printf("%d. %s  level %d  exp %d\n", i+1, entry.UserID, entry.Level, entry.Exp)
			}
			return nil
		},
	}
	topCmd.Flags().IntP("limit", "n", 5, "number of entries to show")
	rootCmd.AddCommand(topCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "sweep",
		Short: "Run the decay sweep over every garden (scheduler entry point)",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			eng, events, err := newEngine()
			if err != nil {
				return err
			}
			report := eng.RunDecaySweep()
			fmt.Printf("gardens %d  plants %d  decayed %d  removed %d\n",
				report.Gardens, report.PlantsChecked, report.PlantsDecayed, report.PlantsRemoved)

			recorded, err := events.EventsSince(start)
			if err != nil {
				return err
			}
			stats := telemetry.CalculateStats(recorded, start)
			if stats.PlantsLost > 0 {
				fmt.Printf("plants lost to neglect: %d\n", stats.PlantsLost)
			}
			return nil
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
