package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: roomsync add floor | roomsync add room <floor-id>")
	}

	switch args[0] {
	case "floor":
		return c.runAddFloor(ctx)
	case "room":
		if len(args) < 2 {
			return fmt.Errorf("usage: roomsync add room <floor-id>")
		}
		return c.runAddRoom(ctx, args[1])
	default:
		return fmt.Errorf("unknown entity %q, expected 'floor' or 'room'", args[0])
	}
}

func (c *Cli) runAddFloor(ctx context.Context) error {
	fmt.Println("=== Add Floor ===")
	fmt.Println()

	name, err := readInput("Name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	description, err := readInput("Description (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read description: %w", err)
	}

	floor, err := c.gateway.CreateFloor(ctx, name, description)
	if err != nil {
		return fmt.Errorf("failed to create floor: %w", err)
	}

	fmt.Println()
	if floor.Pending {
		fmt.Println("✓ Floor saved locally. It will be pushed on the next sync.")
	} else {
		fmt.Println("✓ Floor created!")
	}
	fmt.Printf("ID: %s\n", floor.ID)

	return nil
}

func (c *Cli) runAddRoom(ctx context.Context, floorID string) error {
	fmt.Println("=== Add Room ===")
	fmt.Println()

	name, err := readInput("Name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	capacity, err := readCapacity("Capacity: ")
	if err != nil {
		return err
	}

	features, err := readFeatures("Features (comma-separated, optional): ")
	if err != nil {
		return err
	}

	sess, err := c.sessions.Current(ctx)
	if err != nil {
		return fmt.Errorf("not authenticated: %w", err)
	}

	room, err := c.gateway.CreateRoom(ctx, floorID, name, capacity, features, sess.Username)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	fmt.Println()
	if room.Pending {
		fmt.Println("✓ Room saved locally. It will be pushed on the next sync.")
	} else {
		fmt.Println("✓ Room created!")
	}
	fmt.Printf("ID: %s\n", room.ID)

	return nil
}

func readCapacity(prompt string) (int, error) {
	raw, err := readInput(prompt)
	if err != nil {
		return 0, fmt.Errorf("failed to read capacity: %w", err)
	}

	capacity, err := strconv.Atoi(raw)
	if err != nil || capacity <= 0 {
		return 0, fmt.Errorf("capacity must be a positive number")
	}
	return capacity, nil
}

func readFeatures(prompt string) ([]string, error) {
	raw, err := readInput(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read features: %w", err)
	}
	if raw == "" {
		return []string{}, nil
	}

	parts := strings.Split(raw, ",")
	features := make([]string, 0, len(parts))
	for _, p := range parts {
		if f := strings.TrimSpace(p); f != "" {
			features = append(features, f)
		}
	}
	return features, nil
}
