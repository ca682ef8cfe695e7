// Package catalog loads and validates the scenario bank: the static rubrics, reference
// answers and dialogue scripts the training flows are graded against.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/noah-isme/salestrain-api/internal/models"
)

//go:embed scenarios.yaml
var defaultBank []byte

// ErrInvalidBank indicates the bank document failed schema or rubric validation.
var ErrInvalidBank = errors.New("invalid scenario bank")

// Bank is a versioned collection of scenarios.
type Bank struct {
	Version   int               `yaml:"version" json:"version"`
	Scenarios []models.Scenario `yaml:"scenarios" json:"scenarios"`
}

// Find returns the scenario with the given ID.
func (b Bank) Find(id string) (models.Scenario, bool) {
	for _, scenario := range b.Scenarios {
		if scenario.ID == id {
			return scenario, true
		}
	}
	return models.Scenario{}, false
}

// Default returns the bank compiled into the binary.
func Default() (Bank, error) {
	return Parse(defaultBank)
}

// LoadFile reads a bank from a YAML file. An empty path yields the default bank.
func LoadFile(path string) (Bank, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Bank{}, fmt.Errorf("read scenario bank: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML bank, checks it against the bank schema and validates every rubric.
func Parse(data []byte) (Bank, error) {
	var document interface{}
	if err := yaml.Unmarshal(data, &document); err != nil {
		return Bank{}, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	if err := validateDocument(document); err != nil {
		return Bank{}, err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var bank Bank
	if err := decoder.Decode(&bank); err != nil {
		return Bank{}, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	if err := ValidateBank(bank); err != nil {
		return Bank{}, err
	}

	return bank, nil
}

// Marshal renders a bank back to YAML.
func Marshal(bank Bank) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(bank); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// toJSONValue converts a decoded YAML tree into the value shape the schema validator expects.
func toJSONValue(document interface{}) (interface{}, error) {
	raw, err := json.Marshal(document)
	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}
