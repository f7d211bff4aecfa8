// Prints a signed session token for a user id. Run from project root:
// go run ./scripts/gen-session 1
package main

import (
	"fmt"
	"os"
	"strconv"

	"planera/internal/config"
	"planera/internal/session"
)

func main() {
	userID := int64(1)
	if len(os.Args) > 1 {
		parsed, err := strconv.ParseInt(os.Args[1], 10, 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "usage: gen-session [user-id]")
			os.Exit(1)
		}
		userID = parsed
	}

	cfg := config.Load()
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, nil)
	token, err := sessions.Issue(userID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sign failed:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
