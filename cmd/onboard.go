package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amadeusai/amadeus/internal/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize configuration and data directory",
	RunE:  runOnboard,
}

func runOnboard(_ *cobra.Command, _ []string) error {
	cfgPath := config.ConfigPath()

	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Printf("Config already exists at %s\n", cfgPath)
		fmt.Printf("Press Enter to refresh (keep existing values) or Ctrl+C to cancel: ")
		fmt.Scanln()
		existing, loadErr := config.Load(cfgPath)
		if loadErr != nil {
			def := config.DefaultConfig()
			existing = &def
		}
		if err := config.Save(existing, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Config refreshed at %s\n", cfgPath)
	} else {
		cfg := config.DefaultConfig()
		if err := config.Save(&cfg, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Created config at %s\n", cfgPath)
	}

	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	fmt.Printf("✓ Data directory at %s\n", dataDir)

	writePersonaTemplate()

	fmt.Println("\nAmadeus is ready!")
	fmt.Println("Next steps:")
	fmt.Printf("  1. Add your Gemini API key to %s (or set GEMINI_API_KEY)\n", cfgPath)
	fmt.Println("     Get one at: https://aistudio.google.com/apikey")
	fmt.Println("  2. Chat: amadeus agent -m \"what time is it?\"")
	return nil
}

func writePersonaTemplate() {
	path := config.PersonaPath()
	if _, err := os.Stat(path); err == nil {
		return
	}
	p := config.DefaultPersona()
	template := fmt.Sprintf(`name: %s
personality: %s
style: %s
verbosity: %s
guidelines:
`, p.Name, p.Personality, p.Style, p.Verbosity)
	for _, g := range p.Guidelines {
		template += fmt.Sprintf("  - %s\n", g)
	}
	if err := os.WriteFile(path, []byte(template), 0o644); err == nil {
		fmt.Printf("✓ Persona template at %s\n", path)
	}
}
