package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "SYMPTOM_SIM_"

// ApplyEnv overlays SYMPTOM_SIM_* variables onto cfg. Unset variables leave
// the current values untouched.
func ApplyEnv(cfg *SimulationConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
