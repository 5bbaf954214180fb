package tools

import (
	"time"

	"github.com/amadeusai/amadeus/internal/registry"
	"github.com/amadeusai/amadeus/internal/store"
)

// Deps carries everything the built-in catalog needs.
type Deps struct {
	Store    *store.Store
	Pomodoro *store.PomodoroManager
	Location *time.Location
	Clock    func() time.Time

	WeatherAPIKey   string
	NewsAPIKey      string
	DefaultLocation string

	Alerts AlertThresholds

	// Notify delivers asynchronous messages (timers firing). Optional.
	Notify func(message string)
}

// BuildRegistry assembles the full built-in tool catalog.
func BuildRegistry(deps Deps) *registry.Registry {
	b := registry.NewBuilder()
	b.WithTools(GeneralTools(deps.Clock))
	b.WithTools(FileTools())
	b.WithTools(SystemTools())
	b.WithTools(MonitorTools(deps.Alerts))
	b.WithTools(InfoTools(InfoDeps{
		WeatherAPIKey:   deps.WeatherAPIKey,
		NewsAPIKey:      deps.NewsAPIKey,
		DefaultLocation: deps.DefaultLocation,
	}))
	b.WithTools(WebTools())
	b.WithTools(ProductivityTools(ProductivityDeps{
		Store:    deps.Store,
		Pomodoro: deps.Pomodoro,
		Location: deps.Location,
		Clock:    deps.Clock,
		Notify:   deps.Notify,
	}))
	return b.Build()
}
