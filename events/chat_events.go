package events

import (
	"github.com/go-monolith/mono/pkg/helper"

	domain "github.com/example/zzchat/domain/chat"
)

// MessageBroadcastEvent is emitted after the broadcast engine has
// delivered a message to its room's membership snapshot. The storage
// module consumes it to append the message to the durable log.
type MessageBroadcastEvent struct {
	Message domain.Message `json:"message"`
}

// Event definitions for the chat domain.
var (
	MessageBroadcastV1 = helper.EventDefinition[MessageBroadcastEvent](
		"chat",
		"MessageBroadcast",
		"v1",
	)
)
