package chat

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono"

	domain "github.com/example/zzchat/domain/chat"
	"github.com/example/zzchat/events"
)

// Module is the room/connection broadcast core: registry, engine, and
// message router. Delivered messages are published on the event bus for
// the storage module to append.
type Module struct {
	registry *Registry
	engine   *Engine
	router   *Router
	eventBus mono.EventBus
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventBusAwareModule   = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates the chat core. lookupTimeout bounds adapter calls.
func NewModule(lookupTimeout time.Duration) *Module {
	m := &Module{
		registry: NewRegistry(),
	}
	m.engine = NewEngine(m.registry, m.publishForPersistence)
	m.router = NewRouter(m.engine, lookupTimeout)
	return m
}

// Name returns the module name.
func (m *Module) Name() string {
	return "chat"
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.MessageBroadcastV1.ToBase(),
	}
}

// SetAdapters wires the lookup adapters into the router. Called from
// main.go during assembly.
func (m *Module) SetAdapters(adapters map[Trigger]Adapter) {
	m.router.SetAdapters(adapters)
}

// Start logs readiness; the registry needs no warm-up.
func (m *Module) Start(_ context.Context) error {
	log.Println("[chat] Module started - room registry ready")
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	log.Printf("[chat] Module stopped - %d clients were connected", m.registry.ClientCount())
	return nil
}

// Health returns the health status.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"connected_clients": m.registry.ClientCount(),
		},
	}
}

// Registry exposes the room registry to the transport layer.
func (m *Module) Registry() *Registry {
	return m.registry
}

// Engine exposes the broadcast engine to adapters and handlers.
func (m *Module) Engine() *Engine {
	return m.engine
}

// Connect registers a connection and announces it to the room,
// including to the newly joined connection.
func (m *Module) Connect(conn *Conn) {
	m.registry.Join(conn)
	m.engine.Broadcast(conn.Room, NewSystemMessage(fmt.Sprintf("%s 加入了房间 %s", conn.Nick, conn.Room)))
}

// Disconnect removes a connection from its room first, then announces
// the departure to the reduced membership.
func (m *Module) Disconnect(conn *Conn) {
	m.registry.Leave(conn)
	m.engine.Broadcast(conn.Room, NewSystemMessage(fmt.Sprintf("%s 离开了房间 %s", conn.Nick, conn.Room)))
}

// Route forwards inbound client text to the message router.
func (m *Module) Route(conn *Conn, raw string) {
	m.router.Route(conn, raw)
}

// publishForPersistence emits a delivered message for the storage
// module. Failures are logged, never surfaced to the broadcast caller.
func (m *Module) publishForPersistence(msg domain.Message) {
	if m.eventBus == nil {
		return
	}
	event := events.MessageBroadcastEvent{Message: msg}
	if err := events.MessageBroadcastV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[chat] failed to publish message for persistence: %v", err)
	}
}
