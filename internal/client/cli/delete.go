package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/roomloft/roomsync/internal/client/floors"
)

func (c *Cli) runDeleteRoom(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: roomsync delete <room-id>")
	}
	roomID := args[0]

	confirm, err := readInput(fmt.Sprintf("Delete room %s? (y/N): ", roomID))
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if confirm != "y" && confirm != "Y" {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := c.gateway.DeleteRoom(ctx, roomID); err != nil {
		if errors.Is(err, floors.ErrNotFoundLocally) {
			return err
		}
		// Локальное удаление при этом прошло: gateway возвращает
		// серверную ошибку вместе с отложенной операцией
		fmt.Printf("⚠️  Server not updated (%v).\n", err)
		fmt.Println("The deletion is applied locally and queued for the next sync.")
		return nil
	}

	fmt.Println("✓ Room deleted.")
	return nil
}
