package cli

import (
	"context"
	"fmt"
	"os"
)

func (c *Cli) Run(ctx context.Context, command string, args []string) {
	var err error

	switch command {
	case "register":
		err = c.runRegister(ctx)
	case "login":
		err = c.runLogin(ctx)
	case "logout":
		err = c.runLogout(ctx)
	case "status":
		err = c.runStatus(ctx)
	case "floors":
		err = c.runListFloors(ctx)
	case "rooms":
		err = c.runListRooms(ctx, args)
	case "add":
		err = c.runAdd(ctx, args)
	case "update":
		err = c.runUpdateRoom(ctx, args)
	case "delete":
		err = c.runDeleteRoom(ctx, args)
	case "sync":
		err = c.runSync(ctx, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		PrintUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
