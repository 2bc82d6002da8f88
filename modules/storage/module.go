package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/zzchat/events"
)

// StorageModule owns the durable message log and the user credential
// table on SQLite via GORM. It consumes broadcast events to append
// messages and serves history/clear/register/verify over request-reply.
type StorageModule struct {
	db          *gorm.DB
	messages    *MessageRepository
	credentials *CredentialRepository
	hasher      *PasswordHasher
	dbPath      string
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*StorageModule)(nil)
	_ mono.ServiceProviderModule = (*StorageModule)(nil)
	_ mono.EventConsumerModule   = (*StorageModule)(nil)
	_ mono.HealthCheckableModule = (*StorageModule)(nil)
)

// NewModule creates a new StorageModule backed by the sqlite file at
// dbPath.
func NewModule(dbPath string) *StorageModule {
	return &StorageModule{
		dbPath: dbPath,
		hasher: NewPasswordHasher(),
	}
}

// Name returns the module name.
func (m *StorageModule) Name() string {
	return "storage"
}

// Start opens the database, runs migrations, and wires repositories.
func (m *StorageModule) Start(_ context.Context) error {
	if dir := filepath.Dir(m.dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	log.Printf("[storage] Connecting to SQLite database: %s", m.dbPath)

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := m.db.AutoMigrate(&StoredMessage{}, &UserCredential{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.messages = NewMessageRepository(m.db)
	m.credentials = NewCredentialRepository(m.db)

	log.Println("[storage] Module started successfully")
	return nil
}

// Stop closes the database connection.
func (m *StorageModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("[storage] Database connection closed")
	return nil
}

// Health performs a database ping.
func (m *StorageModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service
// container. The framework prefixes service names with
// "services.storage." in the NATS subject.
func (m *StorageModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceHistory, json.Unmarshal, json.Marshal, m.history,
	); err != nil {
		return fmt.Errorf("failed to register history service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceClear, json.Unmarshal, json.Marshal, m.clearHistory,
	); err != nil {
		return fmt.Errorf("failed to register clear service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceRegister, json.Unmarshal, json.Marshal, m.registerUser,
	); err != nil {
		return fmt.Errorf("failed to register register service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceVerify, json.Unmarshal, json.Marshal, m.verifyUser,
	); err != nil {
		return fmt.Errorf("failed to register verify service: %w", err)
	}

	log.Printf("[storage] Registered services: services.storage.{history,clear,register,verify}")
	return nil
}

// RegisterEventConsumers subscribes to broadcast events so every
// delivered message lands in the durable log.
func (m *StorageModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(
		registry, events.MessageBroadcastV1, m.handleMessageBroadcast, m,
	); err != nil {
		return fmt.Errorf("failed to register MessageBroadcast consumer: %w", err)
	}

	log.Println("[storage] Registered event consumers: MessageBroadcast")
	return nil
}

// handleMessageBroadcast appends one delivered message. Persistence
// failures are logged and swallowed: delivery already happened.
func (m *StorageModule) handleMessageBroadcast(_ context.Context, event events.MessageBroadcastEvent, _ *mono.Msg) error {
	msg := event.Message
	if err := m.messages.Append(msg.Room, msg.Sender, msg.Type, serializeContent(msg.Content), msg.TS); err != nil {
		log.Printf("[storage] failed to append message for room %s: %v", msg.Room, err)
	}
	return nil
}

// serializeContent flattens structured card payloads to text for the
// log; plain strings are stored as-is.
func serializeContent(content any) string {
	if s, ok := content.(string); ok {
		return s
	}
	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Sprintf("%v", content)
	}
	return string(data)
}

// Messages exposes the message repository for in-process callers.
func (m *StorageModule) Messages() *MessageRepository {
	return m.messages
}
