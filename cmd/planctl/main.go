// planctl plans a load offline: it reads a manifest and a vehicle from files
// and prints the resulting plan as JSON, using the same engine the API
// serves.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"loadplan/internal/domain"
	"loadplan/internal/segregation"
	"loadplan/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "planctl",
		Short:         "Dangerous-goods-aware load planning from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPlanCmd())
	return root
}

func newPlanCmd() *cobra.Command {
	var (
		manifestPath string
		vehiclePath  string
		tablePath    string
		budgetMS     int64
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a load plan for a manifest and vehicle",
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []domain.CargoItemInput
			if err := readInput(manifestPath, &items); err != nil {
				return fmt.Errorf("manifest: %w", err)
			}
			var vehicle domain.VehicleInput
			if err := readInput(vehiclePath, &vehicle); err != nil {
				return fmt.Errorf("vehicle: %w", err)
			}

			req := domain.PlanRequest{Vehicle: vehicle, Items: items}
			if budgetMS > 0 {
				req.Options = &domain.OptionsInput{TimeBudgetMS: &budgetMS}
			}

			table := segregation.DefaultTable()
			if tablePath != "" {
				f, err := os.Open(tablePath)
				if err != nil {
					return err
				}
				defer f.Close()
				if table, err = segregation.LoadTable(f); err != nil {
					return err
				}
			}

			logger := zap.NewNop()
			if verbose {
				var err error
				if logger, err = zap.NewDevelopment(); err != nil {
					return err
				}
			}

			planner := service.NewPlanner(segregation.NewEvaluator(table), logger, nil)
			plan, err := planner.Plan(context.Background(), req)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(domain.ToResponse(plan), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "manifest file (JSON or YAML list of cargo items)")
	cmd.Flags().StringVar(&vehiclePath, "vehicle", "", "vehicle file (JSON or YAML)")
	cmd.Flags().StringVar(&tablePath, "table", "", "segregation table YAML (default: built-in matrix)")
	cmd.Flags().Int64Var(&budgetMS, "budget-ms", 0, "search time budget in milliseconds")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log planning details")
	_ = cmd.MarkFlagRequired("manifest")
	_ = cmd.MarkFlagRequired("vehicle")
	return cmd
}

func readInput(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	default:
		return json.Unmarshal(data, v)
	}
}
