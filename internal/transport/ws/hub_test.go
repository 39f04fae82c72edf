package ws

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lvmingyin/react-chat/internal/chat"
)

func testClient(h *Hub, id string, buffer int) *Client {
	c := &Client{
		id:     id,
		hub:    h,
		send:   make(chan []byte, buffer),
		logger: zerolog.Nop(),
	}
	h.add(c)
	return c
}

func TestHubSendQueuesPayload(t *testing.T) {
	h := NewHub(zerolog.Nop())
	c := testClient(h, "a", 4)

	h.Send("a", chat.OutboundEvent{Event: chat.EvAction, Data: chat.Action{Type: chat.ActionLoginIn}})

	select {
	case payload := <-c.send:
		var f chat.Frame
		if err := json.Unmarshal(payload, &f); err != nil {
			t.Fatalf("queued payload is not a frame: %v", err)
		}
		if f.Event != chat.EvAction {
			t.Errorf("frame event = %q, want action", f.Event)
		}
	default:
		t.Fatal("nothing queued on the client")
	}
}

func TestHubSendUnknownConnIsNoOp(t *testing.T) {
	h := NewHub(zerolog.Nop())
	// Must not panic or block.
	h.Send("ghost", chat.OutboundEvent{Event: chat.EvAction, Data: chat.Action{}})
}

func TestHubDropsSlowClient(t *testing.T) {
	h := NewHub(zerolog.Nop())
	testClient(h, "slow", 1)

	// First send fills the buffer, second overflows and drops the client.
	h.Send("slow", chat.OutboundEvent{Event: chat.EvAction, Data: chat.Action{}})
	h.Send("slow", chat.OutboundEvent{Event: chat.EvAction, Data: chat.Action{}})

	if h.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after slow-client drop", h.Len())
	}

	// Further sends to the dropped id are no-ops.
	h.Send("slow", chat.OutboundEvent{Event: chat.EvAction, Data: chat.Action{}})
}

func TestHubRemoveIsIdempotent(t *testing.T) {
	h := NewHub(zerolog.Nop())
	c := testClient(h, "a", 1)

	h.remove(c)
	h.remove(c) // must not close the channel twice

	if h.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", h.Len())
	}
	if _, open := <-c.send; open {
		t.Error("send channel still open after remove")
	}
}
