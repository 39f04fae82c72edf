package chat

import (
	"encoding/json"
	"testing"
)

func TestParseInbound(t *testing.T) {
	tests := []struct {
		name  string
		event string
		data  string
		want  InboundEvent
	}{
		{
			name:  "login",
			event: EvLogin,
			data:  `{"username":"alice"}`,
			want:  &LoginEvent{Username: "alice"},
		},
		{
			name:  "user join",
			event: EvJoin,
			data:  `{"chatName":"room2"}`,
			want:  &JoinEvent{RoomName: "room2"},
		},
		{
			name:  "create chat",
			event: EvCreateRoom,
			data:  `{"chatName":"room2","icon":"icon.png"}`,
			want:  &CreateRoomEvent{RoomName: "room2", Icon: "icon.png"},
		},
		{
			name:  "new message",
			event: EvMessage,
			data:  `{"chatName":"room2","message":"hi"}`,
			want:  &MessageEvent{RoomName: "room2", Body: "hi"},
		},
		{
			name:  "loadChatInfo",
			event: EvRoomInfo,
			data:  `{"chatName":"room2"}`,
			want:  &RoomInfoEvent{RoomName: "room2"},
		},
		{
			name:  "login without payload",
			event: EvLogin,
			data:  "",
			want:  &LoginEvent{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Frame{Event: tt.event, Data: json.RawMessage(tt.data)}
			got, err := ParseInbound(f)
			if err != nil {
				t.Fatalf("ParseInbound() unexpected error: %v", err)
			}
			if got.EventName() != tt.event {
				t.Errorf("EventName() = %q, want %q", got.EventName(), tt.event)
			}

			gotJSON, _ := json.Marshal(got)
			wantJSON, _ := json.Marshal(tt.want)
			if string(gotJSON) != string(wantJSON) {
				t.Errorf("ParseInbound() = %s, want %s", gotJSON, wantJSON)
			}
		})
	}
}

func TestParseInboundRejectsUnknownEvent(t *testing.T) {
	_, err := ParseInbound(Frame{Event: "subscribe"})
	if err == nil {
		t.Fatal("expected error for unknown event")
	}
}

func TestParseInboundRejectsMalformedPayload(t *testing.T) {
	_, err := ParseInbound(Frame{Event: EvLogin, Data: json.RawMessage(`[1,2]`)})
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
