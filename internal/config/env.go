package config

import "os"

// Environment variable overrides, applied after file load and before
// validation. A .env file in the working directory is honored by the CLI via
// godotenv, so these also cover local development setups.
const (
	EnvOutputRoot        = "MODDOC_OUTPUT_ROOT"
	EnvConceptualContent = "MODDOC_CONCEPTUAL_CONTENT"
	EnvNavigation        = "MODDOC_NAVIGATION"
	EnvStateDB           = "MODDOC_STATE_DB"
)

func (p *Project) applyEnv() {
	if v := os.Getenv(EnvOutputRoot); v != "" {
		p.OutputRoot = v
	}
	if v := os.Getenv(EnvConceptualContent); v != "" {
		p.ConceptualContent = v
	}
	if v := os.Getenv(EnvNavigation); v != "" {
		p.Navigation = v
	}
	if v := os.Getenv(EnvStateDB); v != "" {
		p.StateDB = v
	}
}
