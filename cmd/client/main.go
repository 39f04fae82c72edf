// Command client is a line-oriented terminal client for the chat server.
//
// Commands: /join <room>, /create <room> [icon], /info <room>, /quit.
// Any other input is sent as a message to the current room.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	chat "github.com/lvmingyin/react-chat/clients/go/chat"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "chat server URL")
	name := flag.String("name", "", "display name")
	flag.Parse()

	if *name == "" {
		fmt.Fprintln(os.Stderr, "usage: client -name <display name> [-server url]")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := chat.Dial(ctx, *server)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect failed:", err)
		os.Exit(1)
	}
	defer c.Close()

	if err := c.Login(*name); err != nil {
		fmt.Fprintln(os.Stderr, "login failed:", err)
		os.Exit(1)
	}

	var currentRoom string
	roomCh := make(chan string, 1)

	go func() {
		for ev := range c.Events() {
			printEvent(ev, roomCh)
		}
		fmt.Println("* disconnected")
		os.Exit(0)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case currentRoom = <-roomCh:
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit":
			return
		case strings.HasPrefix(line, "/join "):
			err = c.Join(strings.TrimSpace(strings.TrimPrefix(line, "/join ")))
		case strings.HasPrefix(line, "/create "):
			args := strings.Fields(strings.TrimPrefix(line, "/create "))
			if len(args) == 0 {
				fmt.Println("* usage: /create <room> [icon]")
				continue
			}
			icon := "/images/rooms/default.png"
			if len(args) > 1 {
				icon = args[1]
			}
			err = c.CreateRoom(args[0], icon)
		case strings.HasPrefix(line, "/info "):
			err = c.LoadRoomInfo(strings.TrimSpace(strings.TrimPrefix(line, "/info ")))
		default:
			if currentRoom == "" {
				fmt.Println("* join a room first: /join <room>")
				continue
			}
			err = c.Send(currentRoom, line)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "send failed:", err)
			return
		}
	}
}

func printEvent(ev chat.ServerEvent, roomCh chan<- string) {
	switch ev.Name {
	case "connected":
		fmt.Println("* rooms:")
		for name, room := range ev.Connected.ChatMap {
			fmt.Printf("*   %s (%d members)\n", name, room.MemberCount)
		}
	case "loadChatInfo":
		if ev.RoomInfo.Chat != nil {
			fmt.Printf("* %s: %d members, %d messages\n",
				ev.RoomInfo.Chat.Name, ev.RoomInfo.Chat.MemberCount, len(ev.RoomInfo.Messages))
		}
	case "action":
		printAction(ev.Action, roomCh)
	}
}

func printAction(a *chat.Action, roomCh chan<- string) {
	switch a.Type {
	case chat.ActionLoginIn:
		var u chat.User
		if json.Unmarshal(a.Data, &u) == nil {
			fmt.Printf("* logged in as %s\n", u.Username)
		}
	case chat.ActionJoinSuccess:
		var d chat.JoinSuccessData
		if json.Unmarshal(a.Data, &d) == nil {
			select {
			case roomCh <- d.ChatName:
			default:
			}
			fmt.Printf("* joined %s\n", d.ChatName)
			for _, m := range d.Messages {
				fmt.Printf("[%s] %s: %s\n", formatTime(m.Time), m.Username, m.Body)
			}
		}
	case chat.ActionNewMessage:
		var m chat.Message
		if json.Unmarshal(a.Data, &m) == nil {
			fmt.Printf("[%s] %s: %s\n", formatTime(m.Time), m.Username, m.Body)
		}
	case chat.ActionUserJoin:
		var d chat.MembershipData
		if json.Unmarshal(a.Data, &d) == nil && d.User != nil {
			fmt.Printf("* %s joined\n", d.User.Username)
		}
	case chat.ActionUserLeft:
		var d chat.MembershipData
		if json.Unmarshal(a.Data, &d) == nil && d.User != nil {
			fmt.Printf("* %s left\n", d.User.Username)
		}
	case chat.ActionCreateChatSuccess:
		var r chat.Room
		if json.Unmarshal(a.Data, &r) == nil {
			fmt.Printf("* room created: %s\n", r.Name)
		}
	case chat.ActionJoinFailed, chat.ActionCreateChatFailed, chat.ActionMessageFailed:
		fmt.Printf("* error: %s\n", a.Message)
	}
}

func formatTime(unixMs int64) string {
	return time.UnixMilli(unixMs).Format("15:04:05")
}
