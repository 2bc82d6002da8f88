package lookup

import (
	"context"
	"log"

	"github.com/go-monolith/mono"

	"github.com/example/zzchat/modules/chat"
)

// Compile-time interface checks
var (
	_ mono.Module                = (*LookupModule)(nil)
	_ mono.HealthCheckableModule = (*LookupModule)(nil)
)

// LookupModule owns the external lookup adapters and hands them to the
// chat router during assembly.
type LookupModule struct {
	adapters map[chat.Trigger]chat.Adapter
}

// NewModule builds the adapter set. The weather key is the only piece
// of per-deployment state the adapters need.
func NewModule(weatherAPIKey string) *LookupModule {
	fetcher := NewFetcher()
	return &LookupModule{
		adapters: map[chat.Trigger]chat.Adapter{
			chat.TriggerMusic:   NewMusicAdapter(fetcher),
			chat.TriggerWeather: NewWeatherAdapter(fetcher, weatherAPIKey),
			chat.TriggerMovie:   NewMovieAdapter(),
			chat.TriggerNews:    NewNewsAdapter(fetcher),
			chat.TriggerVideo:   NewBilibiliAdapter(fetcher),
		},
	}
}

func (m *LookupModule) Name() string { return "lookup" }

func (m *LookupModule) Start(_ context.Context) error {
	log.Printf("[lookup] module started with %d adapters", len(m.adapters))
	return nil
}

func (m *LookupModule) Stop(_ context.Context) error {
	log.Println("[lookup] module stopped")
	return nil
}

// Adapters returns the trigger-to-adapter wiring for the chat router.
// Called from main.go during assembly.
func (m *LookupModule) Adapters() map[chat.Trigger]chat.Adapter {
	return m.adapters
}

// Health reports module health status
func (m *LookupModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "lookup adapters ready",
		Details: map[string]any{
			"adapters": len(m.adapters),
		},
	}
}
