package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Persona describes the assistant's identity and reply style. Loaded from
// ~/.amadeus/persona.yaml; every field has a sensible default so the file is
// optional.
type Persona struct {
	Name        string   `yaml:"name"`
	Personality string   `yaml:"personality"`
	Style       string   `yaml:"style"`     // e.g. "balanced"
	Verbosity   string   `yaml:"verbosity"` // e.g. "concise"
	Guidelines  []string `yaml:"guidelines"`
}

// DefaultPersona mirrors the assistant's stock identity.
func DefaultPersona() Persona {
	return Persona{
		Name:        "Amadeus",
		Personality: "helpful, concise, and friendly",
		Style:       "balanced",
		Verbosity:   "concise",
		Guidelines: []string{
			"Be concise, natural, and contextually aware in responses",
			"Don't introduce yourself unless asked",
			"When using tools, explain what you're doing briefly",
			"If a task fails, suggest alternatives",
			"Remember and build upon context from the conversation",
		},
	}
}

// PersonaPath returns ~/.amadeus/persona.yaml.
func PersonaPath() string {
	return filepath.Join(DataDir(), "persona.yaml")
}

// LoadPersona reads the persona file; a missing file yields the default.
func LoadPersona(path string) (Persona, error) {
	if path == "" {
		path = PersonaPath()
	}

	p := DefaultPersona()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("read persona %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return DefaultPersona(), fmt.Errorf("parse persona %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = "Amadeus"
	}
	return p, nil
}
