package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/favfood/internal/client/client"
	"github.com/dmitrijs2005/favfood/internal/client/config"
	"github.com/dmitrijs2005/favfood/internal/client/models"
	"github.com/dmitrijs2005/favfood/internal/logging"
)

type signInCall struct{ email, password string }

type fakeAuth struct {
	signInErrs   []error
	registerErrs []error
	signOutErrs  []error
	restored     bool
	restoreErr   error
	pingErr      error

	signIns   []signInCall
	registers []signInCall
	signOuts  int
	forgets   int
	userID    string
	email     string
	closed    bool
}

func pop(errs *[]error) error {
	if len(*errs) == 0 {
		return nil
	}
	err := (*errs)[0]
	*errs = (*errs)[1:]
	return err
}

func (f *fakeAuth) SignIn(_ context.Context, email, password string) error {
	f.signIns = append(f.signIns, signInCall{email, password})
	if err := pop(&f.signInErrs); err != nil {
		return err
	}
	f.userID, f.email = "u-1", email
	return nil
}

func (f *fakeAuth) Register(_ context.Context, email, password string) error {
	f.registers = append(f.registers, signInCall{email, password})
	return pop(&f.registerErrs)
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.signOuts++
	if err := pop(&f.signOutErrs); err != nil {
		return err
	}
	f.userID, f.email = "", ""
	return nil
}

func (f *fakeAuth) Forget(context.Context) {
	f.forgets++
	f.userID, f.email = "", ""
}

func (f *fakeAuth) CurrentUserID() string { return f.userID }

func (f *fakeAuth) CurrentEmail() string { return f.email }

func (f *fakeAuth) RestoreSession(context.Context) (bool, error) {
	if f.restored {
		f.userID, f.email = "u-1", "ana@example.com"
	}
	return f.restored, f.restoreErr
}

func (f *fakeAuth) Ping(context.Context) error { return f.pingErr }

func (f *fakeAuth) Close(context.Context) error {
	f.closed = true
	return nil
}

type fakeProfiles struct {
	profile  *models.Profile
	loadErrs []error
	saveErrs []error

	loads int
	saved []models.Profile
}

func (f *fakeProfiles) Load(context.Context) (*models.Profile, error) {
	f.loads++
	if err := pop(&f.loadErrs); err != nil {
		return nil, err
	}
	if f.profile == nil {
		return nil, client.ErrNotFound
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeProfiles) Save(_ context.Context, p *models.Profile) error {
	f.saved = append(f.saved, *p)
	return pop(&f.saveErrs)
}

type fakePicker struct {
	uri  string
	err  error
	last string
}

func (f *fakePicker) Select(path string) (string, error) {
	f.last = path
	return f.uri, f.err
}

type harness struct {
	app      *App
	auth     *fakeAuth
	profiles *fakeProfiles
	picker   *fakePicker
	out      *bytes.Buffer
}

// newHarness builds an App reading the given lines. Passwords are read
// from the same input.
func newHarness(t *testing.T, lines ...string) *harness {
	t.Helper()

	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	h := &harness{
		auth:     &fakeAuth{},
		profiles: &fakeProfiles{},
		picker:   &fakePicker{},
		out:      &bytes.Buffer{},
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.OnlineCheckInterval = 0

	input := strings.Join(lines, "\n")
	if len(lines) > 0 {
		input += "\n"
	}
	h.app = newApp(cfg, h.auth, h.profiles, h.picker, logging.Nop{}, strings.NewReader(input), h.out)
	return h
}

// signedIn puts the harness on the home screen as if a session had been
// restored.
func (h *harness) signedIn() *harness {
	h.auth.userID, h.auth.email = "u-1", "ana@example.com"
	h.app.navigate(ScreenHome)
	return h
}
