package storage

import (
	"context"
	"testing"
)

func newTestModule(t *testing.T) *StorageModule {
	t.Helper()
	db := openTestDB(t)
	return &StorageModule{
		db:          db,
		messages:    NewMessageRepository(db),
		credentials: NewCredentialRepository(db),
		hasher:      NewPasswordHasher(),
		dbPath:      ":memory:",
	}
}

func TestStorageService_RegisterAndVerify(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	resp, err := m.registerUser(ctx, RegisterRequest{Nick: "alice", Password: "pw123"}, nil)
	if err != nil {
		t.Fatalf("registerUser failed: %v", err)
	}
	if resp.Code != 0 || resp.Message != "注册成功" {
		t.Errorf("Unexpected register response: %+v", resp)
	}

	tests := []struct {
		name    string
		req     VerifyRequest
		code    int
		message string
	}{
		{"correct password", VerifyRequest{Nick: "alice", Password: "pw123"}, 0, "登录成功"},
		{"wrong password", VerifyRequest{Nick: "alice", Password: "nope"}, 1, "密码错误"},
		{"unknown user", VerifyRequest{Nick: "ghost", Password: "pw"}, 1, "用户不存在"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := m.verifyUser(ctx, tt.req, nil)
			if err != nil {
				t.Fatalf("verifyUser failed: %v", err)
			}
			if resp.Code != tt.code || resp.Message != tt.message {
				t.Errorf("Expected {%d %s}, got %+v", tt.code, tt.message, resp)
			}
		})
	}
}

func TestStorageService_RegisterValidation(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"empty nick", RegisterRequest{Nick: "", Password: "pw"}},
		{"empty password", RegisterRequest{Nick: "alice", Password: ""}},
		{"whitespace only", RegisterRequest{Nick: "  ", Password: " "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := m.registerUser(ctx, tt.req, nil)
			if err != nil {
				t.Fatalf("registerUser failed: %v", err)
			}
			if resp.Code != 1 || resp.Message != "参数错误" {
				t.Errorf("Expected validation failure, got %+v", resp)
			}
		})
	}
}

func TestStorageService_RegisterDuplicateNick(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	_, _ = m.registerUser(ctx, RegisterRequest{Nick: "alice", Password: "pw"}, nil)
	resp, err := m.registerUser(ctx, RegisterRequest{Nick: "alice", Password: "other"}, nil)
	if err != nil {
		t.Fatalf("registerUser failed: %v", err)
	}
	if resp.Code != 1 || resp.Message != "昵称已存在" {
		t.Errorf("Expected duplicate nick failure, got %+v", resp)
	}
}

func TestStorageService_HistoryDefaults(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	_ = m.messages.Append("general", "alice", "message", "in default room", 1000)
	_ = m.messages.Append("other", "bob", "message", "elsewhere", 1001)

	// Empty room falls back to the default room.
	resp, err := m.history(ctx, HistoryRequest{}, nil)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(resp.Items))
	}
	if resp.Items[0].Room != "general" || resp.Items[0].Content != "in default room" {
		t.Errorf("Unexpected item: %+v", resp.Items[0])
	}
}

func TestStorageService_ClearHistory(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	_ = m.messages.Append("general", "alice", "message", "m", 1000)

	resp, err := m.clearHistory(ctx, ClearHistoryRequest{Room: "general"}, nil)
	if err != nil {
		t.Fatalf("clearHistory failed: %v", err)
	}
	if resp.Code != 0 || resp.Message != "已清空" {
		t.Errorf("Unexpected clear response: %+v", resp)
	}

	after, _ := m.history(ctx, HistoryRequest{Room: "general"}, nil)
	if len(after.Items) != 0 {
		t.Errorf("Expected empty history after clear, got %d items", len(after.Items))
	}
}

func TestSerializeContent(t *testing.T) {
	if got := serializeContent("plain"); got != "plain" {
		t.Errorf("Expected plain string passthrough, got %q", got)
	}
	got := serializeContent(map[string]any{"name": "song"})
	if got != `{"name":"song"}` {
		t.Errorf("Expected JSON serialization, got %q", got)
	}
}
