// internal/handlers/events/websocket_test.go
package events

import (
	"testing"

	ev "backdesk-service/internal/events"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestOriginAllowed(t *testing.T) {
	h := NewWebSocketHandler(ev.NewHub(zap.NewNop()), nil, []string{"https://backdesk.example.com", "http://localhost:5173"}, zap.NewNop())

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"", true}, // non-browser client
		{"https://backdesk.example.com", true},
		{"HTTPS://BACKDESK.EXAMPLE.COM", true},
		{"http://localhost:5173", true},
		{"https://evil.example.com", false},
		{"http://backdesk.example.com", false}, // scheme matters
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, h.originAllowed(tt.origin), "origin %q", tt.origin)
	}
}

func TestOriginWildcard(t *testing.T) {
	h := NewWebSocketHandler(ev.NewHub(zap.NewNop()), nil, []string{"*"}, zap.NewNop())
	assert.True(t, h.originAllowed("https://anywhere.example.com"))
}
