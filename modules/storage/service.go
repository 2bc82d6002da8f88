package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-monolith/mono"
)

const defaultHistoryLimit = 50

// history handles the storage.history service request.
func (m *StorageModule) history(_ context.Context, req HistoryRequest, _ *mono.Msg) (HistoryResponse, error) {
	room := req.Room
	if room == "" {
		room = "general"
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := m.messages.History(room, limit, req.BeforeTS)
	if err != nil {
		return HistoryResponse{}, err
	}

	items := make([]MessageItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, MessageItem{
			Room:    row.Room,
			Sender:  row.Sender,
			Type:    row.Type,
			Content: row.Content,
			TS:      row.TS,
		})
	}
	return HistoryResponse{Items: items}, nil
}

// clearHistory handles the storage.clear service request.
func (m *StorageModule) clearHistory(_ context.Context, req ClearHistoryRequest, _ *mono.Msg) (OpResponse, error) {
	room := strings.TrimSpace(req.Room)
	if room == "" {
		room = "general"
	}
	if err := m.messages.Clear(room); err != nil {
		return OpResponse{Code: 1, Message: err.Error()}, nil
	}
	return OpResponse{Code: 0, Message: "已清空"}, nil
}

// registerUser handles the storage.register service request. Credential
// failures are structured results, never errors.
func (m *StorageModule) registerUser(_ context.Context, req RegisterRequest, _ *mono.Msg) (OpResponse, error) {
	nick := strings.TrimSpace(req.Nick)
	password := strings.TrimSpace(req.Password)
	if nick == "" || password == "" {
		return OpResponse{Code: 1, Message: "参数错误"}, nil
	}

	hash, salt, err := m.hasher.Hash(password)
	if err != nil {
		return OpResponse{}, err
	}

	cred := &UserCredential{
		Nick:         nick,
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    time.Now().Unix(),
	}
	if err := m.credentials.Create(cred); err != nil {
		if errors.Is(err, ErrNickTaken) {
			return OpResponse{Code: 1, Message: "昵称已存在"}, nil
		}
		return OpResponse{}, err
	}
	return OpResponse{Code: 0, Message: "注册成功"}, nil
}

// verifyUser handles the storage.verify service request.
func (m *StorageModule) verifyUser(_ context.Context, req VerifyRequest, _ *mono.Msg) (OpResponse, error) {
	nick := strings.TrimSpace(req.Nick)
	password := strings.TrimSpace(req.Password)

	cred, err := m.credentials.FindByNick(nick)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return OpResponse{Code: 1, Message: "用户不存在"}, nil
		}
		return OpResponse{}, err
	}
	if !m.hasher.Verify(password, cred.Salt, cred.PasswordHash) {
		return OpResponse{Code: 1, Message: "密码错误"}, nil
	}
	return OpResponse{Code: 0, Message: "登录成功"}, nil
}
