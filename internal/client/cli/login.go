package cli

import (
	"context"
	"fmt"

	"github.com/roomloft/roomsync/pkg/api"
)

func (c *Cli) runLogin(ctx context.Context) error {
	fmt.Println("=== Login ===")
	fmt.Println()

	username, err := readInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Println()
	fmt.Println("Authenticating...")

	resp, err := c.apiClient.Login(ctx, api.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return err
	}

	saved, err := c.sessions.Save(ctx, username, resp.AccessToken, resp.Role, resp.ExpiresIn)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Login successful!")
	fmt.Printf("Username: %s\n", saved.Username)
	fmt.Printf("Role: %s\n", saved.Role)
	fmt.Printf("Access token expires in: %d seconds\n", resp.ExpiresIn)

	return nil
}
