package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func (c *Cli) runSync(ctx context.Context, args []string) error {
	watch := len(args) > 0 && args[0] == "--watch"

	fmt.Println("=== Synchronization ===")
	fmt.Println()

	if !c.sessions.IsPrivileged(ctx) {
		return fmt.Errorf("sync requires an admin session. Please login as an admin")
	}

	result, err := c.syncService.Sync(ctx)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	if result.Skipped {
		fmt.Println("Sync skipped: server unreachable or another sweep in flight.")
	} else {
		fmt.Println("✓ Synchronization completed!")
		fmt.Println()
		fmt.Printf("Replayed operations: %d\n", result.Replayed)
		if result.Dropped > 0 {
			fmt.Printf("Dropped (errors):    %d\n", result.Dropped)
		}
		fmt.Printf("Floors refreshed:    %d\n", result.Floors)
		fmt.Printf("Rooms refreshed:     %d\n", result.Rooms)
	}

	if !watch {
		return nil
	}

	fmt.Println()
	fmt.Println("Watching connectivity; press Ctrl+C to stop.")

	watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-watchCtx.Done()
	fmt.Println()
	fmt.Println("Stopped.")

	return nil
}
