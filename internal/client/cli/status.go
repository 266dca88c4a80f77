package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roomloft/roomsync/internal/client/storage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	fmt.Println("=== Status ===")
	fmt.Println()

	if c.monitor.IsOnline() {
		fmt.Println("Connectivity: online")
	} else {
		fmt.Println("Connectivity: offline")
	}

	sess, err := c.sessions.Current(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			fmt.Println("Session: not logged in")
			fmt.Println()
			fmt.Println("Run 'roomsync login' to authenticate.")
			return nil
		}
		return fmt.Errorf("failed to read session: %w", err)
	}

	fmt.Println("Session: logged in")
	fmt.Printf("Username: %s\n", sess.Username)
	fmt.Printf("Role: %s\n", sess.Role)
	fmt.Printf("Token expires: %s\n", sess.ExpiresAt.Format(time.RFC3339))

	remaining := time.Until(sess.ExpiresAt)
	if remaining > 0 {
		fmt.Printf("Time remaining: %s\n", remaining.Round(time.Second))
	} else {
		fmt.Println("⚠️  Token has expired. Please login again.")
	}

	fmt.Println()
	pending := c.gateway.Queue().Size()
	if pending > 0 {
		fmt.Printf("⚠️  Pending sync: %d operation(s) waiting to be replayed\n", pending)
		fmt.Println("Run 'roomsync sync' to push them to the server.")
	} else {
		fmt.Println("✓ All changes synchronized with server")
	}

	return nil
}
