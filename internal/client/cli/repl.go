package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Me(ctx context.Context) error
	Update(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Avatar(ctx context.Context) error
	Delete(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads one command per line and dispatches it. Handler errors are
// printed and the loop carries on. It returns on EOF, "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("auth %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var cmdErr error

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: me, update, passwd, avatar, delete, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "me", "profile":
			cmdErr = a.Me(ctx)

		case "update":
			cmdErr = a.Update(ctx)

		case "passwd":
			cmdErr = a.ChangePassword(ctx)

		case "avatar":
			cmdErr = a.Avatar(ctx)

		case "delete":
			cmdErr = a.Delete(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(describeError(cmdErr))
		}
	}
}

// describeError renders field errors one per line.
func describeError(err error) string {
	var verr *common.ValidationError
	if errors.As(err, &verr) && len(verr.Fields) > 0 {
		var b strings.Builder
		b.WriteString("Validation failed:")
		for _, f := range verr.Fields {
			b.WriteString("\n  " + f.Field + ": " + f.Message)
		}
		return b.String()
	}
	return "Error: " + err.Error()
}
