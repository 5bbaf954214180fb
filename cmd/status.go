package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amadeusai/amadeus/internal/config"
	"github.com/amadeusai/amadeus/internal/dependency"
	"github.com/amadeusai/amadeus/internal/schema"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and key status",
	RunE:  runStatus,
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List registered tools by category",
	RunE:  runTools,
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := config.ConfigPath()

	fmt.Println("Amadeus Status")
	fmt.Println()

	mark := "✗ (run 'amadeus onboard')"
	if _, err := os.Stat(cfgPath); err == nil {
		mark = "✓"
	}
	fmt.Printf("Config:   %s %s\n", cfgPath, mark)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	fmt.Printf("Model:    %s\n", cfg.Agent.Model)
	fmt.Printf("Timezone: %s\n", cfg.Agent.Timezone)
	fmt.Println()

	fmt.Println("API keys:")
	printKey("Gemini", cfg.Keys.GeminiAPIKey)
	printKey("OpenWeatherMap", cfg.Keys.WeatherAPIKey)
	printKey("NewsAPI", cfg.Keys.NewsAPIKey)
	return nil
}

func printKey(label, key string) {
	if key != "" {
		fmt.Printf("  %-16s ✓\n", label)
	} else {
		fmt.Printf("  %-16s (not set)\n", label)
	}
}

func runTools(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	container, err := dependency.New(context.Background(), cfg, dependency.Options{WithoutLLM: true})
	if err != nil {
		return err
	}
	defer container.Close()

	reg := container.Registry()
	for _, cat := range []schema.Category{
		schema.CategorySystem, schema.CategoryInformation,
		schema.CategoryCommunication, schema.CategoryProductivity,
	} {
		defs := reg.ByCategory(cat)
		if len(defs) == 0 {
			continue
		}
		fmt.Printf("%s (%d):\n", cat, len(defs))
		for _, def := range defs {
			marker := " "
			if def.RequiresConfirmation {
				marker = "!"
			}
			fmt.Printf("  %s %-24s %s\n", marker, def.Name, def.Description)
		}
		fmt.Println()
	}
	return nil
}
