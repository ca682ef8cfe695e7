package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/noah-isme/salestrain-api/internal/catalog"
	"github.com/noah-isme/salestrain-api/internal/dto"
	"github.com/noah-isme/salestrain-api/internal/evaluation"
	"github.com/noah-isme/salestrain-api/internal/repository"
	"github.com/noah-isme/salestrain-api/internal/service"
	"github.com/noah-isme/salestrain-api/internal/store"
)

type evaluateOptions struct {
	scenario string
	text     string
	file     string
	strategy string
	jsonOut  bool
}

func newEvaluateCmd() *cobra.Command {
	opts := &evaluateOptions{}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score an answer against a scenario",
		Long:  "Scores an answer against a scenario rubric. The answer comes from --text, --file, or stdin when neither is set.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEvaluate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.scenario, "scenario", "s", "", "Scenario ID (required)")
	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "Answer text")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Path to a file holding the answer")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "Scoring strategy override (coverage-length or bucketed)")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the result as JSON")

	if err := cmd.MarkFlagRequired("scenario"); err != nil {
		panic(fmt.Sprintf("failed to mark scenario flag as required: %v", err))
	}
	cmd.MarkFlagsMutuallyExclusive("text", "file")

	return cmd
}

func runEvaluate(cmd *cobra.Command, opts *evaluateOptions) error {
	text, err := readAnswer(cmd, opts)
	if err != nil {
		return err
	}

	bank, err := loadBank(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := zerolog.Nop()
	validate := validator.New()
	scenarios := repository.NewScenarioRepository(store.NewMemoryStore(), nil, logger)
	if _, err := service.NewScenarioService(scenarios, validate, logger).Seed(ctx, bank, true); err != nil {
		return fmt.Errorf("failed to load scenarios: %w", err)
	}

	evaluator := service.NewEvaluationService(scenarios, validate, string(evaluation.DefaultStrategy), logger)
	result, err := evaluator.Evaluate(ctx, dto.EvaluationRequest{
		ScenarioID: opts.scenario,
		Text:       text,
		Strategy:   strings.ToLower(strings.TrimSpace(opts.strategy)),
	})
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if opts.jsonOut {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		return encoder.Encode(result)
	}
	printResult(out, result)
	return nil
}

func readAnswer(cmd *cobra.Command, opts *evaluateOptions) (string, error) {
	switch {
	case opts.text != "":
		return opts.text, nil
	case opts.file != "":
		content, err := os.ReadFile(opts.file)
		if err != nil {
			return "", fmt.Errorf("failed to read answer file: %w", err)
		}
		return string(content), nil
	default:
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read answer from stdin: %w", err)
		}
		return string(content), nil
	}
}

func printResult(out io.Writer, result dto.EvaluationResponse) {
	fmt.Fprintf(out, "%s: %d (%s, %s, %d chars)\n", result.ScenarioID, result.TotalScore, result.Label, result.Strategy, result.TextLength)
	for _, score := range result.CriteriaScores {
		fmt.Fprintf(out, "  %-12s %3d  weight %3d  matched %s\n", score.Name, score.Score, score.Weight, strings.Join(score.Matched, ", "))
	}
	for _, suggestion := range result.Suggestions {
		fmt.Fprintf(out, "  - %s\n", suggestion)
	}
}

func loadBank(cmd *cobra.Command) (catalog.Bank, error) {
	path, err := cmd.Flags().GetString("bank")
	if err != nil {
		return catalog.Bank{}, err
	}
	bank, err := catalog.LoadFile(path)
	if err != nil {
		return catalog.Bank{}, fmt.Errorf("failed to load scenario bank: %w", err)
	}
	return bank, nil
}
