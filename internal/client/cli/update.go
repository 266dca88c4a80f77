package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/roomloft/roomsync/internal/client/floors"
)

// runUpdateRoom prompts per field; an empty answer leaves the field as is.
func (c *Cli) runUpdateRoom(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: roomsync update <room-id>")
	}
	roomID := args[0]

	fmt.Println("=== Update Room ===")
	fmt.Println("Press Enter to keep the current value.")
	fmt.Println()

	var changes floors.UpdateRoomChanges

	name, err := readInput("Name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}
	if name != "" {
		changes.Name = &name
	}

	rawCapacity, err := readInput("Capacity: ")
	if err != nil {
		return fmt.Errorf("failed to read capacity: %w", err)
	}
	if rawCapacity != "" {
		capacity, err := strconv.Atoi(rawCapacity)
		if err != nil || capacity <= 0 {
			return fmt.Errorf("capacity must be a positive number")
		}
		changes.Capacity = &capacity
	}

	rawFeatures, err := readInput("Features (comma-separated): ")
	if err != nil {
		return fmt.Errorf("failed to read features: %w", err)
	}
	if rawFeatures != "" {
		parts := strings.Split(rawFeatures, ",")
		features := make([]string, 0, len(parts))
		for _, p := range parts {
			if f := strings.TrimSpace(p); f != "" {
				features = append(features, f)
			}
		}
		changes.Features = &features
	}

	if changes.Name == nil && changes.Capacity == nil && changes.Features == nil {
		fmt.Println("Nothing to update.")
		return nil
	}

	sess, err := c.sessions.Current(ctx)
	if err != nil {
		return fmt.Errorf("not authenticated: %w", err)
	}

	room, err := c.gateway.UpdateRoom(ctx, roomID, changes, sess.Username)
	if err != nil {
		if room == nil {
			return fmt.Errorf("failed to update room: %w", err)
		}
		// Локально изменение применено, отправка отложена
		fmt.Println()
		fmt.Printf("⚠️  Server not updated (%v).\n", err)
		fmt.Println("The change is saved locally and queued for the next sync.")
		return nil
	}

	fmt.Println()
	fmt.Println("✓ Room updated!")
	fmt.Printf("%s  %s (capacity %d)\n", room.ID, room.Name, room.Capacity)

	return nil
}
