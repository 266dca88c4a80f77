package cli

import (
	"context"
	"fmt"
	"strings"
)

func (c *Cli) runListFloors(ctx context.Context) error {
	floorList, err := c.gateway.ListFloors(ctx)
	if err != nil {
		return fmt.Errorf("failed to list floors: %w", err)
	}

	if len(floorList) == 0 {
		fmt.Println("No floors yet.")
		return nil
	}

	fmt.Printf("=== Floors (%d) ===\n", len(floorList))
	fmt.Println()
	for _, f := range floorList {
		marker := ""
		if f.Pending {
			marker = "  [pending sync]"
		}
		fmt.Printf("%s  %s%s\n", f.ID, f.Name, marker)
		if f.Description != "" {
			fmt.Printf("    %s\n", f.Description)
		}
	}

	return nil
}

func (c *Cli) runListRooms(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: roomsync rooms <floor-id>")
	}
	floorID := args[0]

	roomList, err := c.gateway.ListRooms(ctx, floorID)
	if err != nil {
		return fmt.Errorf("failed to list rooms: %w", err)
	}

	if len(roomList) == 0 {
		fmt.Println("No rooms on this floor.")
		return nil
	}

	fmt.Printf("=== Rooms of %s (%d) ===\n", floorID, len(roomList))
	fmt.Println()
	for _, r := range roomList {
		marker := ""
		if r.Pending {
			marker = "  [pending sync]"
		}
		fmt.Printf("%s  %s (capacity %d)%s\n", r.ID, r.Name, r.Capacity, marker)
		if len(r.Features) > 0 {
			fmt.Printf("    features: %s\n", strings.Join(r.Features, ", "))
		}
	}

	return nil
}
