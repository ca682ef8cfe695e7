package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/salestrain-api/internal/dto"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestEvaluateCommand_JSON(t *testing.T) {
	output, err := execute(t, "", "evaluate", "--bank", "", "--scenario", "product-intro-cloud-firewall", "--text", "企业级云端防护", "--json")
	require.NoError(t, err)

	var result dto.EvaluationResponse
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, 14, result.TotalScore)
	assert.Equal(t, "needs improvement", result.Label)
	assert.Len(t, result.CriteriaScores, 3)
}

func TestEvaluateCommand_ReadsStdinAndOverridesStrategy(t *testing.T) {
	output, err := execute(t, "企业级", "evaluate", "--bank", "", "-s", "qa-features", "--strategy", "coverage-length")
	require.NoError(t, err)
	assert.Contains(t, output, "qa-features:")
	assert.Contains(t, output, "coverage-length")
}

func TestEvaluateCommand_ReadsFile(t *testing.T) {
	answer := filepath.Join(t.TempDir(), "answer.txt")
	require.NoError(t, os.WriteFile(answer, []byte("价格 性价比 投资回报"), 0o644))

	output, err := execute(t, "", "evaluate", "--bank", "", "-s", "qa-pricing", "--file", answer)
	require.NoError(t, err)
	assert.Contains(t, output, "qa-pricing:")
}

func TestEvaluateCommand_Errors(t *testing.T) {
	_, err := execute(t, "", "evaluate", "--bank", "", "--text", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "scenario" not set`)

	_, err = execute(t, "", "evaluate", "--bank", "", "-s", "missing", "--text", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario not found")

	_, err = execute(t, "", "evaluate", "--bank", "", "-s", "qa-features", "--text", "x", "--file", "y")
	require.Error(t, err)
}

func TestScenariosList(t *testing.T) {
	output, err := execute(t, "", "scenarios", "list", "--bank", "")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 10)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, output, "boss-report")
}

func TestScenariosValidate(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.yaml")
	require.NoError(t, os.WriteFile(valid, []byte(`version: 1
scenarios:
  - id: intro
    title: Intro
    category: product-intro
    prompt: Introduce the product.
    criteria:
      - id: positioning
        name: Positioning
        keywords: [enterprise]
        weight: 100
`), 0o644))

	output, err := execute(t, "", "scenarios", "validate", valid)
	require.NoError(t, err)
	assert.Contains(t, output, "1 scenarios OK")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte(`version: 1
scenarios:
  - id: intro
    title: Intro
    category: product-intro
    prompt: Introduce the product.
    criteria:
      - id: positioning
        name: Positioning
        weight: 60
`), 0o644))

	_, err = execute(t, "", "scenarios", "validate", invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 60")
}
