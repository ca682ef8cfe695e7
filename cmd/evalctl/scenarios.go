package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/noah-isme/salestrain-api/internal/catalog"
)

func newScenariosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Inspect scenario banks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the scenarios in the bank",
		Args:  cobra.NoArgs,
		RunE:  runScenariosList,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a scenario bank file against the schema and rubric rules",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenariosValidate,
	})

	return cmd
}

func runScenariosList(cmd *cobra.Command, _ []string) error {
	bank, err := loadBank(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tSTRATEGY\tCRITERIA\tTITLE")
	for _, scenario := range bank.Scenarios {
		strategy := scenario.Strategy
		if strategy == "" {
			strategy = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", scenario.ID, scenario.Category, strategy, len(scenario.Criteria), scenario.Title)
	}
	return w.Flush()
}

func runScenariosValidate(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read scenario bank: %w", err)
	}

	bank, err := catalog.Parse(content)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d scenarios OK\n", args[0], len(bank.Scenarios))
	return nil
}
