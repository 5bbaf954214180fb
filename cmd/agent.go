package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/amadeusai/amadeus/internal/config"
	"github.com/amadeusai/amadeus/internal/dependency"
	"github.com/amadeusai/amadeus/internal/dispatch"
	"github.com/amadeusai/amadeus/internal/tools"
)

var (
	agentMessage string
	agentSession string
	agentOffline bool
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Talk to the assistant",
	RunE:  runAgent,
}

func init() {
	agentCmd.Flags().StringVarP(&agentMessage, "message", "m", "", "Send a single command and exit")
	agentCmd.Flags().StringVarP(&agentSession, "session", "s", "cli", "Session key")
	agentCmd.Flags().BoolVar(&agentOffline, "offline", false, "Skip the LLM; keyword commands only")
}

var exitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

func runAgent(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if !agentOffline {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%w (run 'amadeus onboard' or set GEMINI_API_KEY)", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := dependency.New(ctx, cfg, dependency.Options{WithoutLLM: agentOffline})
	if err != nil {
		return err
	}
	defer container.Close()

	if agentMessage != "" {
		return runSingleCommand(ctx, container.Dispatcher())
	}
	return runInteractive(ctx, container.Dispatcher())
}

// runSingleCommand sends one command and prints the reply.
func runSingleCommand(ctx context.Context, d *dispatch.Dispatcher) error {
	cctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	resp := d.ProcessCommand(cctx, agentSession, agentMessage)
	printResponse(resp)
	return nil
}

// runInteractive reads commands line by line until exit or Ctrl+C.
func runInteractive(ctx context.Context, d *dispatch.Dispatcher) error {
	fmt.Printf("%s! Type a command, or 'exit' to quit.\n\n", tools.Greeting(time.Now()))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")

		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return nil
		}
		if ctx.Err() != nil {
			fmt.Println("\nGoodbye!")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if exitCommands[strings.ToLower(line)] {
			fmt.Println("Goodbye!")
			return nil
		}

		printResponse(d.ProcessCommand(ctx, agentSession, line))
	}
}

func printResponse(resp dispatch.Response) {
	if resp.ToolUsed != "" {
		fmt.Printf("\nAmadeus [%s]\n%s\n\n", resp.ToolUsed, resp.Text)
		return
	}
	fmt.Printf("\nAmadeus\n%s\n\n", resp.Text)
}
