package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a lightweight stub.
type execIface interface {
	Entities(ctx context.Context) error
	Use(ctx context.Context, entity string) error
	List(ctx context.Context) error
	Page(ctx context.Context, n int) error
	Size(ctx context.Context, n int) error
	Filter(ctx context.Context, field, value string) error
	Clear(ctx context.Context) error
	Refresh(ctx context.Context) error
	Lang(ctx context.Context, locale string) error
	Show(ctx context.Context, id string) error
	Create(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Refs(ctx context.Context) error
	Token(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

const helpText = `Available commands:
  entities                 list manageable entities
  use <entity>             switch entity and load its first page
  list                     show the current page
  page <n> | size <n>      change page or page size
  filter <field> <value>   filter a column (empty value removes it)
  clear                    drop all filters
  refresh                  re-run the current query
  lang <en|ta|si>          display locale
  show <id>                show one record in all locales
  create | edit <id>       open the editing form
  delete <id>              delete a record
  refs                     load countries, colors and addons
  token | whoami | logout  manage the session token
  exit | quit              leave the program`

var errUsage = errors.New("usage")

// runREPL reads commands line by line from reader and dispatches them to a.
// Errors returned by handlers are printed as "! ..." notices and the loop
// carries on. It exits on EOF or on "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("admin %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if err := dispatch(ctx, a, cmd, args); err != nil {
			if errors.Is(err, errUsage) {
				printlnFn(err.Error())
				continue
			}
			printlnFn(notice(err))
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		printlnFn(helpText)
		return nil
	case "entities":
		return a.Entities(ctx)
	case "use":
		if len(args) != 1 {
			return usage("use <entity>")
		}
		return a.Use(ctx, args[0])
	case "l", "list":
		return a.List(ctx)
	case "page", "size":
		if len(args) != 1 {
			return usage(cmd + " <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return usage(cmd + " <n>")
		}
		if cmd == "page" {
			return a.Page(ctx, n)
		}
		return a.Size(ctx, n)
	case "filter":
		if len(args) < 1 {
			return usage("filter <field> <value>")
		}
		return a.Filter(ctx, args[0], strings.Join(args[1:], " "))
	case "clear":
		return a.Clear(ctx)
	case "refresh":
		return a.Refresh(ctx)
	case "lang":
		if len(args) != 1 {
			return usage("lang <en|ta|si>")
		}
		return a.Lang(ctx, args[0])
	case "show", "edit", "delete":
		if len(args) != 1 {
			return usage(cmd + " <id>")
		}
		switch cmd {
		case "show":
			return a.Show(ctx, args[0])
		case "edit":
			return a.Edit(ctx, args[0])
		default:
			return a.Delete(ctx, args[0])
		}
	case "create":
		return a.Create(ctx)
	case "refs":
		return a.Refs(ctx)
	case "token":
		return a.Token(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "logout":
		return a.Logout(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}

func usage(s string) error {
	return fmt.Errorf("%w: %s", errUsage, s)
}
