package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Service names as registered in the storage service container.
const (
	ServiceHistory  = "history"
	ServiceClear    = "clear"
	ServiceRegister = "register"
	ServiceVerify   = "verify"
)

// StoragePort defines the interface other modules use to reach storage.
type StoragePort interface {
	History(ctx context.Context, room string, limit int, beforeTS int64) ([]MessageItem, error)
	ClearHistory(ctx context.Context, room string) error
	RegisterUser(ctx context.Context, nick, password string) OpResponse
	VerifyUser(ctx context.Context, nick, password string) OpResponse
}

// StorageAdapter implements StoragePort using the service container.
type StorageAdapter struct {
	container mono.ServiceContainer
}

// NewStorageAdapter creates a new StorageAdapter.
func NewStorageAdapter(container mono.ServiceContainer) StoragePort {
	if container == nil {
		panic("storage: ServiceContainer is nil")
	}
	return &StorageAdapter{container: container}
}

// History fetches persisted messages for a room in ascending order.
func (a *StorageAdapter) History(ctx context.Context, room string, limit int, beforeTS int64) ([]MessageItem, error) {
	req := HistoryRequest{Room: room, Limit: limit, BeforeTS: beforeTS}
	var resp HistoryResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceHistory,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return resp.Items, nil
}

// ClearHistory removes every persisted message in a room.
func (a *StorageAdapter) ClearHistory(ctx context.Context, room string) error {
	req := ClearHistoryRequest{Room: room}
	var resp OpResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceClear,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	if resp.Code != 0 {
		return fmt.Errorf("failed to clear history: %s", resp.Message)
	}
	return nil
}

// RegisterUser creates a credential record for a new nick.
func (a *StorageAdapter) RegisterUser(ctx context.Context, nick, password string) OpResponse {
	req := RegisterRequest{Nick: nick, Password: password}
	var resp OpResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceRegister,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return OpResponse{Code: 1, Message: "注册服务暂时不可用"}
	}
	return resp
}

// VerifyUser checks a nick and password pair against stored credentials.
func (a *StorageAdapter) VerifyUser(ctx context.Context, nick, password string) OpResponse {
	req := VerifyRequest{Nick: nick, Password: password}
	var resp OpResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceVerify,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return OpResponse{Code: 1, Message: "登录服务暂时不可用"}
	}
	return resp
}
