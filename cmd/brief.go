package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amadeusai/amadeus/internal/config"
	"github.com/amadeusai/amadeus/internal/dependency"
)

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Print the daily brief",
	RunE:  runBrief,
}

func runBrief(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	container, err := dependency.New(ctx, cfg, dependency.Options{WithoutLLM: true})
	if err != nil {
		return err
	}
	defer container.Close()

	fmt.Println(container.Brief().Generate(ctx))
	return nil
}
