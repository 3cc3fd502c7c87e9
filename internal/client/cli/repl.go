package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App implements
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context, args []string) error
	Put(ctx context.Context, args []string) error
	Get(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Remove(ctx context.Context, args []string) error
	Queue(ctx context.Context) error
	Sync(ctx context.Context) error
	Status(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, status, exit"
	helpLoggedIn  = "Available commands: put <file> [name], get <name> [dest], ls, rm <name>, queue, sync, status, logout [--forget], exit"
)

var usages = map[string]string{
	"put":    "Usage: put <file> [name]",
	"get":    "Usage: get <name> [dest]",
	"rm":     "Usage: rm <name>",
	"delete": "Usage: rm <name>",
}

// runREPL reads commands from scanner until EOF or exit/quit. Command errors
// are reported and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gs %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx, args)
		case "put":
			err = a.Put(ctx, args)
		case "get":
			err = a.Get(ctx, args)
		case "ls", "list":
			err = a.List(ctx)
		case "rm", "delete":
			err = a.Remove(ctx, args)
		case "queue":
			err = a.Queue(ctx)
		case "sync":
			err = a.Sync(ctx)
		case "status":
			err = a.Status(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		switch {
		case err == nil:
		case errors.Is(err, errUsage):
			printlnFn(usages[cmd])
		default:
			printlnFn("Error:", describeError(err))
		}
	}
}
