package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"pharmabrand/adapters/excel"
	"pharmabrand/adapters/llm"
	"pharmabrand/app"
	"pharmabrand/domain/strategy"
	"pharmabrand/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pharmabrand-cli",
		Short: "Pharma Brand Manager CLI for inspecting the workbook and generating plans",
	}

	rootCmd.AddCommand(
		newAxesCmd(),
		newImperativesCmd(),
		newDifferentiatorsCmd(),
		newPlanCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newService wires a plan service the same way the servers do. mock
// swaps the OpenAI client for the canned mock, so workbook commands
// work without credentials.
func newService(workbook string, mock bool) (*app.PlanService, error) {
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded environment from .env")
	}

	store := excel.NewWorkbookStore()

	if mock {
		generator := llm.NewNarrativeAdapter(&llm.MockLLMClient{}, "mock", 0)
		return app.NewPlanService(store, generator, workbook), nil
	}

	appConfig, err := config.Load()
	if err != nil {
		return nil, err
	}
	if workbook == "" {
		workbook = appConfig.Paths.WorkbookFile
	}
	client, err := llm.NewClient(llm.Config{
		APIKey:      appConfig.AI.APIKey,
		Temperature: appConfig.AI.Temperature,
		Timeout:     appConfig.AI.Timeout,
	})
	if err != nil {
		return nil, err
	}
	generator := llm.NewNarrativeAdapter(client, appConfig.AI.Model, appConfig.AI.MaxTokens)
	return app.NewPlanService(store, generator, workbook), nil
}

func newAxesCmd() *cobra.Command {
	var workbook string

	cmd := &cobra.Command{
		Use:   "axes",
		Short: "Show the criteria axis options derived from the workbook header",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := newService(workbook, true)
			if err != nil {
				return err
			}
			axes, err := service.Axes(context.Background())
			if err != nil {
				return err
			}
			return printJSON(axes)
		},
	}
	cmd.Flags().StringVar(&workbook, "workbook", "test.xlsx", "strategy workbook path")
	return cmd
}

func newImperativesCmd() *cobra.Command {
	var workbook, role, lifecycle, journey string

	cmd := &cobra.Command{
		Use:   "imperatives",
		Short: "Filter strategic imperatives for a criteria triple",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := newService(workbook, true)
			if err != nil {
				return err
			}
			sel := strategy.NewSelection()
			sel.Role = role
			sel.Lifecycle = lifecycle
			sel.Journey = journey
			imperatives, err := service.Imperatives(context.Background(), sel)
			if err != nil {
				return err
			}
			return printJSON(imperatives)
		},
	}
	cmd.Flags().StringVar(&workbook, "workbook", "test.xlsx", "strategy workbook path")
	cmd.Flags().StringVar(&role, "role", "", "audience role column name")
	cmd.Flags().StringVar(&lifecycle, "lifecycle", "", "lifecycle column name")
	cmd.Flags().StringVar(&journey, "journey", "", "journey column name")
	return cmd
}

func newDifferentiatorsCmd() *cobra.Command {
	var workbook string

	cmd := &cobra.Command{
		Use:   "differentiators",
		Short: "List the distinct product differentiators",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := newService(workbook, true)
			if err != nil {
				return err
			}
			diffs, err := service.Differentiators(context.Background())
			if err != nil {
				return err
			}
			return printJSON(diffs)
		},
	}
	cmd.Flags().StringVar(&workbook, "workbook", "test.xlsx", "strategy workbook path")
	return cmd
}

func newPlanCmd() *cobra.Command {
	var workbook, role string
	var imperatives, differentiators []string
	var mock bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run a generation pass for the selected imperatives",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := newService(workbook, mock)
			if err != nil {
				return err
			}
			sel := strategy.NewSelection()
			sel.Role = role
			sel.Imperatives = imperatives
			sel.Differentiators = differentiators
			if len(sel.Imperatives) > strategy.MaxSelections {
				sel.Imperatives = sel.Imperatives[:strategy.MaxSelections]
			}
			items, err := service.GeneratePlan(context.Background(), sel)
			if err != nil {
				return err
			}
			for _, item := range items {
				if item.Tactic == "" {
					fmt.Printf("-- %s\n   %s\n", item.Imperative, item.Notice)
					continue
				}
				narrative := item.Narrative.WithDefaults()
				fmt.Printf("## %s: %s\n%s\nEstimated Cost: %s\nEstimated Timeframe: %s\n\n",
					item.Imperative, item.Tactic, narrative.Description, narrative.Cost, narrative.Timeframe)
				if item.Notice != "" {
					fmt.Printf("   (%s)\n", item.Notice)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&workbook, "workbook", "test.xlsx", "strategy workbook path")
	cmd.Flags().StringVar(&role, "role", "", "audience role (exactly \"HCP\" selects HCP tactics)")
	cmd.Flags().StringArrayVar(&imperatives, "imperative", nil, "selected imperative (repeatable, max 3)")
	cmd.Flags().StringArrayVar(&differentiators, "differentiator", nil, "selected differentiator (repeatable, max 3)")
	cmd.Flags().BoolVar(&mock, "mock", false, "use the mock generator instead of OpenAI")
	return cmd
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
