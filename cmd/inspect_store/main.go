package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"chatshot-be/internal/entity"

	"github.com/fatih/color"
)

// Operator tool: dump the contents of an account store file without booting
// the server. Usage: go run ./cmd/inspect_store -file data/chat_data_<key>.json
func main() {
	filePath := flag.String("file", "", "path to a chat_data_<key>.json file")
	showMessages := flag.Bool("messages", false, "print every message of every snapshot")
	flag.Parse()

	if *filePath == "" {
		fmt.Println("usage: inspect_store -file <path> [-messages]")
		os.Exit(1)
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		color.Red("read failed: %v", err)
		os.Exit(1)
	}

	var store entity.AccountStore
	if err := json.Unmarshal(data, &store); err != nil {
		color.Red("parse failed (file corrupt?): %v", err)
		os.Exit(1)
	}

	color.Cyan("=== Account Store: %s ===", *filePath)
	fmt.Printf("Profile: me=%q other=%q\n", store.MeName, store.OtherName)
	fmt.Printf("Avatars: me=%d bytes, other=%d bytes (data URIs)\n", len(store.MePic), len(store.OtherPic))
	color.Cyan("Saved chats: %d", len(store.SavedChats))

	for i, saved := range store.SavedChats {
		fmt.Printf("  [%d] %s (%s): %d messages\n", i, saved.Title, saved.Date, len(saved.Messages))
		if *showMessages {
			for _, msg := range saved.Messages {
				if msg.Role == entity.RoleMe {
					color.Green("      me: %s", msg.Content)
				} else {
					color.Yellow("      other: %s", msg.Content)
				}
			}
		}
	}
}
