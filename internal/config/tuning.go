package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/isaacjstriker/blockgrid/games/blockgrid/board"
	"github.com/isaacjstriker/blockgrid/games/blockgrid/engine"
	"github.com/isaacjstriker/blockgrid/games/blockgrid/pieces"
	"github.com/isaacjstriker/blockgrid/games/blockgrid/seeded"
)

// Tuning groups the gameplay constants that a TUNING_FILE may override.
// Keys left out of the file keep their defaults.
//
//	scoring:
//	  per_cell: 10
//	  all_clear_bonus: 500
//	generator:
//	  ramp_start: 2000
//	rules:
//	  undo_budget: 5
type Tuning struct {
	Scoring   board.Scoring `yaml:"scoring"`
	Generator pieces.Tuning `yaml:"generator"`
	Rules     engine.Rules  `yaml:"rules"`
}

// DefaultTuning returns the shipped constants.
func DefaultTuning() Tuning {
	rules := engine.DefaultRules
	rules.Milestones = append([]int(nil), engine.DefaultRules.Milestones...)
	return Tuning{
		Scoring:   board.DefaultScoring,
		Generator: pieces.DefaultTuning,
		Rules:     rules,
	}
}

// LoadTuning reads a YAML tuning file over the defaults.
func LoadTuning(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to read tuning file: %w", err)
	}
	return ParseTuning(data)
}

// ParseTuning decodes YAML over the defaults and validates the result.
func ParseTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("failed to parse tuning file: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	sort.Ints(t.Rules.Milestones)
	return t, nil
}

// Validate rejects values the engine cannot run with.
func (t Tuning) Validate() error {
	switch {
	case t.Scoring.PerCell < 0 || t.Scoring.ComboUnit < 0 || t.Scoring.AllClearBonus < 0:
		return fmt.Errorf("invalid tuning: scoring values must not be negative")
	case t.Scoring.StreakIncrement < 0:
		return fmt.Errorf("invalid tuning: streak_increment must not be negative")
	case t.Generator.MinWeight <= 0:
		return fmt.Errorf("invalid tuning: min_weight must be positive")
	case t.Generator.MaxAttempts < 1:
		return fmt.Errorf("invalid tuning: max_attempts must be at least 1")
	case t.Generator.RampEnd < t.Generator.RampStart:
		return fmt.Errorf("invalid tuning: ramp_end is below ramp_start")
	case t.Rules.ReviveBudget < 0 || t.Rules.UndoBudget < 0 || t.Rules.ReviveCells < 0:
		return fmt.Errorf("invalid tuning: rule budgets must not be negative")
	}
	return nil
}

// Deps builds engine dependencies from the tuning around src.
func (t Tuning) Deps(src seeded.Source) engine.Deps {
	return engine.Deps{
		Source:    src,
		Generator: pieces.NewGenerator(t.Generator),
		Scoring:   t.Scoring,
		Rules:     t.Rules,
	}
}
