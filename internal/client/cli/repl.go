package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// execIface is the command surface the REPL drives. *App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	hasUser() bool
	Init(ctx context.Context) error
	ClockIn(ctx context.Context, ts time.Time) error
	Status(ctx context.Context) error
	History(ctx context.Context, limit int) error
	Edit(ctx context.Context, day string, events []string) error
	Delete(ctx context.Context, day string, force bool) error
	Profile(ctx context.Context) error
	Reset(ctx context.Context, force bool) error
	Demo(ctx context.Context, force bool) error
}

// runREPL reads commands line by line from reader and dispatches them to a
// until EOF, "exit" or "quit". Commands that prompt read from the same
// reader, so nothing is buffered ahead of them.
//
//	Without a profile:
//	  help, init, demo, exit | quit
//
//	With a profile:
//	  help
//	  (c)lock [HH:MM] [YYYY-MM-DD]  clock in now or at the given time
//	  (s)tatus                      today's timeline and the hour bank
//	  (h)istory [N]                 last N days, newest first
//	  edit DAY HH:MM...             replace the events of DAY
//	  delete DAY                    remove DAY (asks for confirmation)
//	  profile                       change the profile
//	  reset                         erase everything (asks for confirmation)
//	  demo                          load the demo week
//	  exit | quit
//
// Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, now func() time.Time, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	printlnFn := func(args ...any) { fmt.Fprintln(w, args...) }

	for {
		fmt.Fprintf(w, "meuponto%s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		err = nil
		switch cmd {
		case "help":
			if a.hasUser() {
				printlnFn("Available commands: (c)lock [HH:MM] [YYYY-MM-DD], (s)tatus, (h)istory [N], edit DAY HH:MM..., delete DAY, profile, reset, demo, exit")
			} else {
				printlnFn("Available commands: init, demo, exit")
			}

		case "init":
			err = a.Init(ctx)

		case "c", "clock":
			var ts time.Time
			at, date := "", ""
			if len(args) > 0 {
				at = args[0]
			}
			if len(args) > 1 {
				date = args[1]
			}
			if ts, err = clockTime(now(), date, at); err == nil {
				err = a.ClockIn(ctx, ts)
			}

		case "s", "status":
			err = a.Status(ctx)

		case "h", "history":
			limit := 0
			if len(args) > 0 {
				if limit, err = strconv.Atoi(args[0]); err != nil {
					printlnFn("Usage: history [N]")
					continue
				}
			}
			err = a.History(ctx, limit)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit YYYY-MM-DD HH:MM [HH:MM...]")
				continue
			}
			err = a.Edit(ctx, args[0], args[1:])

		case "delete":
			if len(args) != 1 {
				printlnFn("Usage: delete YYYY-MM-DD")
				continue
			}
			err = a.Delete(ctx, args[0], false)

		case "profile":
			err = a.Profile(ctx)

		case "reset":
			err = a.Reset(ctx, false)

		case "demo":
			err = a.Demo(ctx, false)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

// prompt shows the username, if any.
func (a *App) prompt() string {
	u := a.store.Snapshot().User
	if u == nil {
		return ""
	}
	return fmt.Sprintf(" (%s)", u.Username)
}

// Shell runs the interactive loop on the App's input.
func (a *App) Shell(ctx context.Context) {
	fmt.Fprintln(a.out, "meuponto shell (type 'help' for commands)")
	runREPL(ctx, a, a.now, a.prompt, a.in, a.out)
}
