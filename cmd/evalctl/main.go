// Package main provides evalctl, an offline client for grading answers against the scenario bank.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "evalctl",
		Short:         "Grade sales-training answers offline",
		Long:          "evalctl scores free-text answers against the scenario bank with the same rules the API uses, and validates scenario bank files.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("bank", os.Getenv("SALES_CATALOG_PATH"), "Path to a scenario bank YAML file (default: built-in bank)")

	root.AddCommand(newEvaluateCmd())
	root.AddCommand(newScenariosCmd())
	return root
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
