// Package cli implements the interactive command surface of the roomsync
// client. Commands are thin: all offline-first behavior lives in the
// gateway and sync services.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/roomloft/roomsync/internal/client/api"
	"github.com/roomloft/roomsync/internal/client/connectivity"
	"github.com/roomloft/roomsync/internal/client/floors"
	"github.com/roomloft/roomsync/internal/client/session"
	"github.com/roomloft/roomsync/internal/client/sync"
)

type Cli struct {
	apiClient   api.ClientAPI
	sessions    *session.Service
	gateway     *floors.Service
	syncService *sync.Service
	monitor     *connectivity.Monitor
}

func New(
	apiClient api.ClientAPI,
	sessions *session.Service,
	gateway *floors.Service,
	syncService *sync.Service,
	monitor *connectivity.Monitor,
) *Cli {
	return &Cli{
		apiClient:   apiClient,
		sessions:    sessions,
		gateway:     gateway,
		syncService: syncService,
		monitor:     monitor,
	}
}

func PrintUsage() {
	fmt.Println("RoomSync Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  roomsync [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version        Show version information")
	fmt.Println("  --server URL     Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH        Path to local database (default: roomsync-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                Register new user")
	fmt.Println("  login                   Login to server")
	fmt.Println("  logout                  Logout and drop the local session")
	fmt.Println("  status                  Show session, connectivity and pending queue")
	fmt.Println("  floors                  List floors")
	fmt.Println("  rooms <floor-id>        List rooms of a floor")
	fmt.Println("  add floor               Create a floor (works offline)")
	fmt.Println("  add room <floor-id>     Create a room on a floor (works offline)")
	fmt.Println("  update <room-id>        Edit a room")
	fmt.Println("  delete <room-id>        Delete a room")
	fmt.Println("  sync [--watch]          Run one sync sweep, or keep watching connectivity")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  roomsync login")
	fmt.Println("  roomsync add floor")
	fmt.Println("  roomsync rooms floor-2")
	fmt.Println("  roomsync sync --watch")
	fmt.Println("  roomsync --server https://example.com floors")
}

// readInput читает строку из stdin
func readInput(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// readPassword читает пароль без отображения на экране
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(passwordBytes), nil
}
