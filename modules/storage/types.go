package storage

// HistoryRequest is the request for the history service. BeforeTS of
// zero means no upper bound.
type HistoryRequest struct {
	Room     string `json:"room"`
	Limit    int    `json:"limit"`
	BeforeTS int64  `json:"before_ts,omitempty"`
}

// MessageItem is one persisted message in a history response. Content
// is the stored text; structured card payloads stay serialized.
type MessageItem struct {
	Room    string `json:"room"`
	Sender  string `json:"sender"`
	Type    string `json:"type"`
	Content string `json:"content"`
	TS      int64  `json:"ts"`
}

// HistoryResponse is the ordered (ascending by timestamp) history slice.
type HistoryResponse struct {
	Items []MessageItem `json:"items"`
}

// ClearHistoryRequest asks for all messages of a room to be deleted.
type ClearHistoryRequest struct {
	Room string `json:"room"`
}

// RegisterRequest creates a new user credential.
type RegisterRequest struct {
	Nick     string `json:"nick"`
	Password string `json:"password"`
}

// VerifyRequest checks a nick/password pair.
type VerifyRequest struct {
	Nick     string `json:"nick"`
	Password string `json:"password"`
}

// OpResponse is the structured success/failure result for credential
// and clear operations: code 0 on success, 1 on failure, with a
// human-readable reason.
type OpResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
