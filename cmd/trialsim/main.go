package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"trialsim/adapters/report"
	"trialsim/adapters/rng"
	"trialsim/adapters/stats"
	"trialsim/app"
	"trialsim/domain/trial"
	"trialsim/internal/config"
	"trialsim/ui"
)

func main() {
	// Optional .env; environment wins over defaults, flags win over both.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "trialsim",
		Short: "Monte Carlo operating characteristics for a two-stage adaptive enrichment trial design",
	}

	rootCmd.AddCommand(
		newSimulateCmd(),
		newSweepCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSimulationService() *app.SimulationService {
	return app.NewSimulationService(stats.NewLogRankEngine(), rng.NewStreamSource())
}

// scenarioFlags registers the scenario overrides shared by simulate and sweep.
func scenarioFlags(cmd *cobra.Command, sc *trial.Scenario) {
	cmd.Flags().Float64Var(&sc.Prevalence, "prevalence", sc.Prevalence, "biomarker prevalence in (0,1]")
	cmd.Flags().Float64Var(&sc.AccrualRate, "accrual-rate", sc.AccrualRate, "accrual rate in patients/month")
	cmd.Flags().Float64Var(&sc.MedianPositiveExperimental, "median-pos-exp", sc.MedianPositiveExperimental, "experimental median PFS, positive stratum (months)")
	cmd.Flags().Float64Var(&sc.MedianNegativeExperimental, "median-neg-exp", sc.MedianNegativeExperimental, "experimental median PFS, negative stratum (months)")
	cmd.Flags().Float64Var(&sc.MedianPositiveControl, "median-pos-ctrl", sc.MedianPositiveControl, "control median PFS, positive stratum (months)")
	cmd.Flags().Float64Var(&sc.MedianNegativeControl, "median-neg-ctrl", sc.MedianNegativeControl, "control median PFS, negative stratum (months)")
	cmd.Flags().Float64Var(&sc.AlphaNegative, "alpha-neg", sc.AlphaNegative, "interim significance threshold, negative stratum")
	cmd.Flags().Float64Var(&sc.AlphaPositive, "alpha-pos", sc.AlphaPositive, "interim significance threshold, positive stratum")
	cmd.Flags().IntVar(&sc.Replications, "replications", sc.Replications, "number of Monte Carlo replications")
	cmd.Flags().Int64Var(&sc.Seed, "seed", sc.Seed, "random seed for deterministic operations")
}

func newSimulateCmd() *cobra.Command {
	var workers int
	var asJSON bool
	scenario := config.DefaultScenario()

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one scenario and print its outcome probabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyUnchangedFlags(cmd, &scenario, cfg.Scenario)
			if workers == 0 {
				workers = cfg.Workers
			}

			summary, err := newSimulationService().Run(cmd.Context(), app.SimulationRequest{
				Scenario: scenario,
				Workers:  workers,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(summary)
			}
			fmt.Print(report.RenderText(summary))
			return nil
		},
	}

	scenarioFlags(cmd, &scenario)
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent replications (0 = one per CPU)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the summary as JSON")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var workers int
	var out string
	var prevalences string
	scenario := config.DefaultScenario()

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the scenario over a prevalence grid and export a workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyUnchangedFlags(cmd, &scenario, cfg.Scenario)

			variants, err := prevalenceGrid(scenario, prevalences)
			if err != nil {
				return err
			}

			svc := app.NewSweepService(newSimulationService())
			result, err := svc.Run(cmd.Context(), app.SweepRequest{Variants: variants, Workers: workers})
			if err != nil {
				return err
			}
			if err := report.WriteSweepWorkbook(out, result); err != nil {
				return err
			}
			fmt.Printf("wrote %d scenarios to %s\n", len(result.Rows), out)
			return nil
		},
	}

	scenarioFlags(cmd, &scenario)
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent replications (0 = one per CPU)")
	cmd.Flags().StringVar(&out, "out", "sweep.xlsx", "output workbook path")
	cmd.Flags().StringVar(&prevalences, "prevalences", "0.3,0.4,0.5", "comma-separated prevalence grid")
	return cmd
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the batch simulation API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port == "" {
				port = cfg.Server.Port
			}

			a := ui.NewApp(ui.Config{
				Defaults: cfg.Scenario,
				Workers:  cfg.Workers,
			}, newSimulationService())
			return a.Serve(port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (defaults to PORT env)")
	return cmd
}

// applyUnchangedFlags backfills scenario fields the user did not set on the
// command line with the environment-derived configuration, so precedence is
// flag > env > default.
func applyUnchangedFlags(cmd *cobra.Command, scenario *trial.Scenario, fromEnv trial.Scenario) {
	set := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { set[f.Name] = true })

	if !set["prevalence"] {
		scenario.Prevalence = fromEnv.Prevalence
	}
	if !set["accrual-rate"] {
		scenario.AccrualRate = fromEnv.AccrualRate
	}
	if !set["median-pos-exp"] {
		scenario.MedianPositiveExperimental = fromEnv.MedianPositiveExperimental
	}
	if !set["median-neg-exp"] {
		scenario.MedianNegativeExperimental = fromEnv.MedianNegativeExperimental
	}
	if !set["median-pos-ctrl"] {
		scenario.MedianPositiveControl = fromEnv.MedianPositiveControl
	}
	if !set["median-neg-ctrl"] {
		scenario.MedianNegativeControl = fromEnv.MedianNegativeControl
	}
	if !set["alpha-neg"] {
		scenario.AlphaNegative = fromEnv.AlphaNegative
	}
	if !set["alpha-pos"] {
		scenario.AlphaPositive = fromEnv.AlphaPositive
	}
	if !set["replications"] {
		scenario.Replications = fromEnv.Replications
	}
	if !set["seed"] {
		scenario.Seed = fromEnv.Seed
	}
	scenario.SampleSizePositive = fromEnv.SampleSizePositive
	scenario.SampleSizePositiveMax = fromEnv.SampleSizePositiveMax
	scenario.SampleSizeNegative = fromEnv.SampleSizeNegative
}

func prevalenceGrid(base trial.Scenario, list string) ([]app.SweepVariant, error) {
	parts := strings.Split(list, ",")
	variants := make([]app.SweepVariant, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid prevalence %q: %w", part, err)
		}
		variant := base
		variant.Prevalence = p
		variants = append(variants, app.SweepVariant{
			Label:    fmt.Sprintf("prevalence=%.2f", p),
			Scenario: variant,
		})
	}
	return variants, nil
}
