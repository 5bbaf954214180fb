// Package dependency wires core amadeus services using go.uber.org/dig.
package dependency

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/dig"

	"github.com/amadeusai/amadeus/internal/brief"
	"github.com/amadeusai/amadeus/internal/confirm"
	"github.com/amadeusai/amadeus/internal/config"
	"github.com/amadeusai/amadeus/internal/dispatch"
	"github.com/amadeusai/amadeus/internal/executor"
	"github.com/amadeusai/amadeus/internal/gateway"
	"github.com/amadeusai/amadeus/internal/intent"
	"github.com/amadeusai/amadeus/internal/provider"
	"github.com/amadeusai/amadeus/internal/registry"
	"github.com/amadeusai/amadeus/internal/reminder"
	"github.com/amadeusai/amadeus/internal/schema"
	"github.com/amadeusai/amadeus/internal/session"
	"github.com/amadeusai/amadeus/internal/store"
	"github.com/amadeusai/amadeus/internal/tools"
)

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	cfg        *config.Config
	dispatcher *dispatch.Dispatcher
	st         *store.Store
	reg        *registry.Registry
	hub        *gateway.Hub
	briefGen   *brief.Generator
	reminders  *reminder.Service
	loc        *time.Location
}

func (c *Container) Config() *config.Config           { return c.cfg }
func (c *Container) Dispatcher() *dispatch.Dispatcher { return c.dispatcher }
func (c *Container) Store() *store.Store              { return c.st }
func (c *Container) Registry() *registry.Registry     { return c.reg }
func (c *Container) Hub() *gateway.Hub                { return c.hub }
func (c *Container) Brief() *brief.Generator          { return c.briefGen }
func (c *Container) Reminders() *reminder.Service     { return c.reminders }
func (c *Container) Location() *time.Location         { return c.loc }

// Close releases held resources, currently the database handle.
func (c *Container) Close() error {
	return c.st.Close()
}

// Options tweaks how the container is assembled.
type Options struct {
	// DataDir overrides the default ~/.amadeus storage location.
	DataDir string
	// WithoutLLM skips provider construction; intent resolution then relies
	// on the keyword resolver alone. Useful offline and in tests.
	WithoutLLM bool
}

// New builds and wires all core services from cfg.
func New(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	if opts.DataDir == "" {
		opts.DataDir = config.DataDir()
	}

	d := dig.New()

	provide := []any{
		func() *config.Config { return cfg },
		func() *gateway.Hub { return gateway.NewHub() },
		func() *store.PomodoroManager { return store.NewPomodoroManager() },
		func() (*store.Store, error) { return store.Open(opts.DataDir) },
		func() (*session.Manager, error) { return session.NewManager(opts.DataDir) },
		func() (config.Persona, error) { return config.LoadPersona("") },
		newLocation,
		newGate,
		func() schema.LLMProvider {
			if opts.WithoutLLM || cfg.Keys.GeminiAPIKey == "" {
				return nil
			}
			p, err := provider.NewGemini(ctx, cfg.Keys.GeminiAPIKey, cfg.Agent.Model,
				cfg.Agent.MaxTokens, cfg.Agent.Temperature)
			if err != nil {
				return nil
			}
			return p
		},
		newRegistry,
		newResolver,
		newExecutor,
		newDispatcher,
		newBrief,
		newReminderService,
	}
	for _, fn := range provide {
		if err := d.Provide(fn); err != nil {
			return nil, fmt.Errorf("wire services: %w", err)
		}
	}

	var result *Container
	err := d.Invoke(func(
		dispatcher *dispatch.Dispatcher,
		st *store.Store,
		reg *registry.Registry,
		hub *gateway.Hub,
		briefGen *brief.Generator,
		reminders *reminder.Service,
		loc *time.Location,
	) {
		result = &Container{
			cfg:        cfg,
			dispatcher: dispatcher,
			st:         st,
			reg:        reg,
			hub:        hub,
			briefGen:   briefGen,
			reminders:  reminders,
			loc:        loc,
		}
	})
	return result, err
}

func newLocation(cfg *config.Config) *time.Location {
	if cfg.Agent.Timezone != "" {
		if loc, err := time.LoadLocation(cfg.Agent.Timezone); err == nil {
			return loc
		}
	}
	return time.Local
}

func newGate(cfg *config.Config) *confirm.Gate {
	return confirm.NewGate(time.Duration(cfg.Agent.ConfirmTTL) * time.Second)
}

func newRegistry(cfg *config.Config, st *store.Store, pom *store.PomodoroManager,
	loc *time.Location, hub *gateway.Hub) *registry.Registry {
	return tools.BuildRegistry(tools.Deps{
		Store:           st,
		Pomodoro:        pom,
		Location:        loc,
		WeatherAPIKey:   cfg.Keys.WeatherAPIKey,
		NewsAPIKey:      cfg.Keys.NewsAPIKey,
		DefaultLocation: cfg.Agent.DefaultLocation,
		Alerts: tools.AlertThresholds{
			CPU:    cfg.Alerts.CPU,
			Memory: cfg.Alerts.Memory,
			Disk:   cfg.Alerts.Disk,
		},
		Notify: func(message string) { hub.Broadcast("timer", message) },
	})
}

// newResolver chains the deterministic keyword resolver ahead of the LLM so
// cheap, unambiguous commands never cost a model call.
func newResolver(p schema.LLMProvider, reg *registry.Registry) intent.Resolver {
	chain := intent.Chain{intent.NewKeywordResolver()}
	if p != nil {
		chain = append(chain, intent.NewLLMResolver(p, reg))
	}
	return chain
}

func newExecutor(cfg *config.Config, reg *registry.Registry, gate *confirm.Gate) *executor.Executor {
	return executor.New(reg, gate, time.Duration(cfg.Agent.ToolTimeout)*time.Second)
}

func newDispatcher(cfg *config.Config, res intent.Resolver, exec *executor.Executor,
	gate *confirm.Gate, sessions *session.Manager, p schema.LLMProvider,
	persona config.Persona) *dispatch.Dispatcher {
	return dispatch.New(res, exec, gate, sessions, p, persona, dispatch.Options{
		MemoryWindow: cfg.Agent.MemoryWindow,
		SpokenLimit:  cfg.Agent.SpokenLimit,
	})
}

func newBrief(cfg *config.Config, st *store.Store, loc *time.Location, persona config.Persona) *brief.Generator {
	return &brief.Generator{
		Store:           st,
		Location:        loc,
		WeatherAPIKey:   cfg.Keys.WeatherAPIKey,
		DefaultLocation: cfg.Agent.DefaultLocation,
		AssistantName:   persona.Name,
	}
}

func newReminderService(cfg *config.Config, st *store.Store, gen *brief.Generator,
	hub *gateway.Hub, loc *time.Location) *reminder.Service {
	return reminder.New(st, gen, hub.Broadcast, reminder.Config{
		Interval:  time.Duration(cfg.Agent.ReminderInterval) * time.Second,
		BriefCron: cfg.Agent.DailyBriefCron,
		Location:  loc,
	})
}
