package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/amadeusai/amadeus/internal/config"
	"github.com/amadeusai/amadeus/internal/dependency"
	"github.com/amadeusai/amadeus/internal/gateway"
)

var gatewayPort int

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Start the HTTP gateway and background scheduler",
	RunE:  runGateway,
}

func init() {
	gatewayCmd.Flags().IntVarP(&gatewayPort, "port", "p", 0, "Gateway port (overrides config)")
}

func runGateway(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if gatewayPort > 0 {
		cfg.Gateway.Port = gatewayPort
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w (run 'amadeus onboard' or set GEMINI_API_KEY)", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := dependency.New(ctx, cfg, dependency.Options{})
	if err != nil {
		return err
	}
	defer container.Close()

	server := gateway.New(container.Dispatcher(), container.Store(), container.Hub(),
		container.Location(), cfg.Gateway.Port)

	fmt.Printf("Amadeus gateway on port %d. Press Ctrl+C to stop.\n", cfg.Gateway.Port)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(gctx) })
	g.Go(func() error {
		if err := container.Reminders().Start(gctx); err != nil {
			return err
		}
		<-gctx.Done()
		container.Reminders().Stop()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "gateway error: %v\n", err)
		return err
	}
	fmt.Println("\nShutdown complete.")
	return nil
}
