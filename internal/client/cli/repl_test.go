package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/favfood/internal/logging"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	screen   Screen
	calls    []string
	loginErr error
}

func (f *fakeExec) currentScreen() Screen { return f.screen }

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) Login(context.Context) error {
	_ = f.record("login")
	if f.loginErr != nil {
		return f.loginErr
	}
	f.screen = ScreenHome
	return nil
}
func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Show(context.Context) error     { return f.record("show") }
func (f *fakeExec) Edit(context.Context) error     { return f.record("edit") }
func (f *fakeExec) Photo(context.Context) error    { return f.record("photo") }
func (f *fakeExec) Save(context.Context) error     { return f.record("save") }
func (f *fakeExec) Reload(context.Context) error   { return f.record("reload") }
func (f *fakeExec) Logout(context.Context) error {
	f.screen = ScreenLogin
	return f.record("logout")
}

func runScript(t *testing.T, f *fakeExec, script string) string {
	t.Helper()
	var out bytes.Buffer
	status := func() string { return "(" + string(f.currentScreen()) + ")" }
	runREPL(context.Background(), f, logging.Nop{}, status, bufio.NewReader(strings.NewReader(script)), &out)
	return out.String()
}

func TestRunREPL_DispatchDependsOnScreen(t *testing.T) {
	f := &fakeExec{screen: ScreenLogin}

	out := runScript(t, f, "save\nregister\nlogin\nregister\n\nshow\nedit\nphoto\nsave\nreload\nlogout\nexit\nshow\n")

	assert.Equal(t, []string{"register", "login", "show", "edit", "photo", "save", "reload", "logout"}, f.calls)
	assert.Contains(t, out, "Comando desconocido: save")
	assert.Contains(t, out, "Comando desconocido: register")
	assert.Contains(t, out, "favfood (login)> ")
	assert.Contains(t, out, "favfood (home)> ")
	assert.True(t, strings.HasSuffix(out, "¡Hasta luego!\n"))
}

func TestRunREPL_Help(t *testing.T) {
	f := &fakeExec{screen: ScreenLogin}
	out := runScript(t, f, "help\nlogin\nhelp\nquit\n")

	assert.Contains(t, out, "Comandos disponibles: login, register, exit")
	assert.Contains(t, out, "Comandos disponibles: show, edit, photo, save, reload, logout, exit")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	f := &fakeExec{screen: ScreenLogin}
	out := runScript(t, f, "login")

	assert.Equal(t, []string{"login"}, f.calls, "a final line without newline still runs")
	assert.NotContains(t, out, "¡Hasta luego!")
}

func TestRunREPL_LogsHandlerErrors(t *testing.T) {
	f := &fakeExec{screen: ScreenLogin, loginErr: io.ErrUnexpectedEOF}
	var out, logs bytes.Buffer

	runREPL(context.Background(), f, logging.NewTextLogger(&logs, "info"), func() string { return "" },
		bufio.NewReader(strings.NewReader("login\nexit\n")), &out)

	assert.Equal(t, []string{"login"}, f.calls)
	assert.Contains(t, logs.String(), "command failed")
	assert.Contains(t, logs.String(), "command=login")
	assert.Contains(t, out.String(), "¡Hasta luego!", "the loop continues after an error")
}

func TestHelpText(t *testing.T) {
	assert.NotEqual(t, helpText(ScreenLogin), helpText(ScreenHome))
	assert.Equal(t, helpText(ScreenLogin), helpText(ScreenRegister))
}
