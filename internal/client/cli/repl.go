package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/favfood/internal/logging"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	currentScreen() Screen
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Show(ctx context.Context) error
	Edit(ctx context.Context) error
	Photo(ctx context.Context) error
	Save(ctx context.Context) error
	Reload(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them to a. The prompt
// shows statusFn(). The loop exits on EOF or on "exit" / "quit".
//
//	Login screen:
//	  login            sign in
//	  register         create an account
//
//	Home screen:
//	  show             print the profile
//	  edit             change name, last name and favorite food
//	  photo            pick a profile photo
//	  save             save the profile
//	  reload           load the profile again
//	  logout           sign out
//
// Errors returned by handlers are logged; the loop goes on.
func runREPL(ctx context.Context, a execIface, logger logging.Logger, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "favfood %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(w, "¡Hasta luego!")
			return
		}
		if cmd == "help" {
			fmt.Fprintln(w, helpText(a.currentScreen()))
			continue
		}

		handler := commandFor(a, cmd)
		if handler == nil {
			fmt.Fprintln(w, "Comando desconocido:", cmd)
			continue
		}
		if err := handler(ctx); err != nil {
			logger.Warn(ctx, "command failed", "command", cmd, "error", err)
		}
	}
}

func helpText(s Screen) string {
	if s == ScreenHome {
		return "Comandos disponibles: show, edit, photo, save, reload, logout, exit"
	}
	return "Comandos disponibles: login, register, exit"
}

func commandFor(a execIface, cmd string) func(context.Context) error {
	if a.currentScreen() == ScreenHome {
		switch cmd {
		case "show":
			return a.Show
		case "edit":
			return a.Edit
		case "photo":
			return a.Photo
		case "save":
			return a.Save
		case "reload":
			return a.Reload
		case "logout":
			return a.Logout
		}
		return nil
	}

	switch cmd {
	case "login":
		return a.Login
	case "register":
		return a.Register
	}
	return nil
}
