package chat

import (
	"fmt"
	"testing"
	"time"

	"github.com/lvmingyin/react-chat/internal/models"
)

func TestMessageLogAppendOrder(t *testing.T) {
	l := NewMessageLog()

	const n = 5
	for i := 0; i < n; i++ {
		l.Append("room2", models.Message{Username: "bob", Body: fmt.Sprintf("msg-%d", i)})
	}

	msgs := l.List("room2")
	if len(msgs) != n {
		t.Fatalf("List() returned %d messages, want %d", len(msgs), n)
	}
	for i, m := range msgs {
		if m.Body != fmt.Sprintf("msg-%d", i) {
			t.Errorf("msgs[%d].Body = %q, want msg-%d", i, m.Body, i)
		}
		if m.ID == "" {
			t.Errorf("msgs[%d] has no id", i)
		}
		if m.RoomName != "room2" {
			t.Errorf("msgs[%d].RoomName = %q, want room2", i, m.RoomName)
		}
		if i > 0 && m.Time < msgs[i-1].Time {
			t.Errorf("msgs[%d].Time decreased: %d < %d", i, m.Time, msgs[i-1].Time)
		}
	}
}

func TestMessageLogListStable(t *testing.T) {
	l := NewMessageLog()
	l.Append("room2", models.Message{Body: "hi"})

	first := l.List("room2")
	second := l.List("room2")
	if len(first) != 1 || len(second) != 1 || first[0].ID != second[0].ID {
		t.Fatal("repeated List() calls disagree")
	}

	// Mutating the returned slice must not affect the log.
	first[0].Body = "tampered"
	if l.List("room2")[0].Body != "hi" {
		t.Error("List() returned a live reference into the log")
	}
}

func TestMessageLogEmptyRoom(t *testing.T) {
	l := NewMessageLog()
	msgs := l.List("nowhere")
	if msgs == nil || len(msgs) != 0 {
		t.Fatalf("List(unknown) = %v, want empty non-nil slice", msgs)
	}
}

func TestMessageLogMonotonicStamp(t *testing.T) {
	l := NewMessageLog()

	// Wall clock steps backwards between appends.
	times := []time.Time{
		time.UnixMilli(2000),
		time.UnixMilli(1000),
		time.UnixMilli(3000),
	}
	i := 0
	l.now = func() time.Time {
		ts := times[i]
		i++
		return ts
	}

	for range times {
		l.Append("room2", models.Message{Body: "x"})
	}

	msgs := l.List("room2")
	want := []int64{2000, 2000, 3000}
	for i, m := range msgs {
		if m.Time != want[i] {
			t.Errorf("msgs[%d].Time = %d, want %d", i, m.Time, want[i])
		}
	}
}
