package submit

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/favfood/internal/client/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errBoom        = errors.New("boom")
	errNoUser      = errors.New("no user")
	errBadPassword = errors.New("bad password")
)

type recorder struct {
	calls atomic.Int32
	seen  []form.Values
	errs  []error
}

func (r *recorder) action(ctx context.Context, in form.Values) error {
	n := int(r.calls.Add(1))
	r.seen = append(r.seen, in)
	if n <= len(r.errs) {
		return r.errs[n-1]
	}
	return nil
}

func filledRegister() *form.Form {
	f := form.NewRegisterForm()
	f.Set(form.FieldEmail, "user.test@xyz.com")
	f.Set(form.FieldPassword, "Abc123!@")
	return f
}

func TestSubmit_InvalidNeverCallsBackend(t *testing.T) {
	rec := &recorder{}
	f := form.NewRegisterForm()
	f.Set(form.FieldEmail, "nope")
	c := New("register", f, rec.action)

	res := c.Submit(context.Background())

	assert.Equal(t, StateInvalid, res.State)
	assert.Equal(t, form.MsgEmailInvalid, res.Errors[form.FieldEmail])
	assert.Equal(t, form.MsgPasswordRequired, res.Errors[form.FieldPassword])
	assert.Zero(t, rec.calls.Load())
	assert.Equal(t, StateInvalid, c.State())
}

func TestSubmit_SuccessFiresCallbackOnce(t *testing.T) {
	rec := &recorder{}
	var fired []form.Values
	ok := Notice{Title: "Registro Exitoso", Message: "Tu cuenta ha sido creada correctamente."}

	c := New("register", filledRegister(), rec.action,
		WithSuccess(ok),
		OnSuccess(func(v form.Values) { fired = append(fired, v) }))

	res := c.Submit(context.Background())

	assert.Equal(t, StateSucceeded, res.State)
	assert.Equal(t, ok, res.Notice)
	assert.NoError(t, res.Err)
	require.Len(t, fired, 1)
	assert.Equal(t, "user.test@xyz.com", fired[0][form.FieldEmail])
	assert.EqualValues(t, 1, rec.calls.Load())
}

func TestSubmit_FailureKeepsValuesAndPicksNotice(t *testing.T) {
	rec := &recorder{errs: []error{errBadPassword}}
	f := filledRegister()
	notices := CodeNotices(
		Notice{Title: "Error de Inicio de Sesión", Message: "Verifica tu correo electrónico y contraseña."},
		map[error]Notice{
			errBadPassword: {Title: "Error de Inicio de Sesión", Message: "Contraseña incorrecta."},
			errNoUser:      {Title: "Error de Inicio de Sesión", Message: "No existe una cuenta con este correo."},
		})
	c := New("login", f, rec.action, WithNotices(notices))

	res := c.Submit(context.Background())

	assert.Equal(t, StateFailed, res.State)
	assert.True(t, res.Retryable)
	assert.ErrorIs(t, res.Err, errBadPassword)
	assert.Equal(t, "Contraseña incorrecta.", res.Notice.Message)
	assert.Equal(t, "user.test@xyz.com", f.Value(form.FieldEmail))
	assert.Equal(t, "Abc123!@", f.Value(form.FieldPassword))
	assert.ErrorIs(t, c.LastError(), errBadPassword)
}

func TestCodeNotices_FallsBackToGeneric(t *testing.T) {
	generic := Notice{Title: "Error", Message: "generic"}
	fn := CodeNotices(generic, map[error]Notice{errNoUser: {Title: "x", Message: "no user"}})

	assert.Equal(t, "no user", fn(errors.Join(errors.New("wrap"), errNoUser)).Message)
	assert.Equal(t, generic, fn(errBoom))
	assert.Equal(t, Notice{Title: "t", Message: "m"}, GenericNotice("t", "m")(errBoom))
}

func TestRetry_UsesSnapshotOfFailedSubmission(t *testing.T) {
	rec := &recorder{errs: []error{errBoom}}
	f := filledRegister()
	c := New("register", f, rec.action)

	res := c.Submit(context.Background())
	require.Equal(t, StateFailed, res.State)
	require.True(t, c.CanRetry())

	f.Set(form.FieldEmail, "changed@xyz.com")

	res = c.Retry(context.Background())
	assert.Equal(t, StateSucceeded, res.State)
	require.Len(t, rec.seen, 2)
	assert.Equal(t, rec.seen[0], rec.seen[1])
	assert.Equal(t, "user.test@xyz.com", rec.seen[1][form.FieldEmail])
	assert.False(t, c.CanRetry())
}

func TestRetry_UnlimitedManualRetries(t *testing.T) {
	rec := &recorder{errs: []error{errBoom, errBoom, errBoom}}
	c := New("profile-update", filledRegister(), rec.action)

	c.Submit(context.Background())
	assert.Equal(t, StateFailed, c.Retry(context.Background()).State)
	assert.Equal(t, StateFailed, c.Retry(context.Background()).State)
	assert.Equal(t, StateSucceeded, c.Retry(context.Background()).State)
	assert.EqualValues(t, 4, rec.calls.Load())
}

func TestRetry_IgnoredOutsideFailed(t *testing.T) {
	rec := &recorder{}
	c := New("register", filledRegister(), rec.action)

	res := c.Retry(context.Background())
	assert.True(t, res.Ignored)
	assert.Equal(t, StateIdle, res.State)

	c.Submit(context.Background())
	res = c.Retry(context.Background())
	assert.True(t, res.Ignored)
	assert.Equal(t, StateSucceeded, res.State)
	assert.EqualValues(t, 1, rec.calls.Load())
}

func TestRetry_NotRetryableFailure(t *testing.T) {
	rec := &recorder{errs: []error{errNoUser}}
	c := New("profile-load", nil, rec.action,
		WithRetryable(func(err error) bool { return !errors.Is(err, errNoUser) }))

	res := c.Submit(context.Background())
	assert.Equal(t, StateFailed, res.State)
	assert.False(t, res.Retryable)
	assert.False(t, c.CanRetry())
	assert.True(t, c.Retry(context.Background()).Ignored)
	assert.EqualValues(t, 1, rec.calls.Load())
}

func TestSubmit_IgnoredWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	c := New("sign-out", nil, func(ctx context.Context, in form.Values) error {
		calls.Add(1)
		close(started)
		<-release
		return errBoom
	})

	done := make(chan Result)
	go func() { done <- c.Submit(context.Background()) }()
	<-started

	assert.Equal(t, StateInFlight, c.State())
	assert.False(t, c.CanSubmit())

	res := c.Submit(context.Background())
	assert.True(t, res.Ignored)
	assert.Equal(t, StateInFlight, res.State)
	assert.True(t, c.Retry(context.Background()).Ignored)

	c.Reset()
	assert.Equal(t, StateInFlight, c.State(), "reset cannot interrupt a call")

	close(release)
	first := <-done
	assert.Equal(t, StateFailed, first.State)
	assert.EqualValues(t, 1, calls.Load())
	assert.True(t, c.CanSubmit())
}

func TestSubmit_ContextPassedThrough(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	var got any
	c := New("sign-out", nil, func(ctx context.Context, in form.Values) error {
		got = ctx.Value(key{})
		assert.Empty(t, in)
		return nil
	})

	assert.Equal(t, StateSucceeded, c.Submit(ctx).State)
	assert.Equal(t, "v", got)
}

func TestGate(t *testing.T) {
	rec := &recorder{}
	f := form.NewLoginForm()
	c := New("login", f, rec.action, WithGate(func(f *form.Form) bool { return f.IsValid() }))

	assert.False(t, c.CanSubmit())

	f.Set(form.FieldEmail, "a@b.co")
	f.Set(form.FieldPassword, "secret")
	assert.True(t, c.CanSubmit())

	blocked := New("login", f, rec.action, WithGate(func(*form.Form) bool { return false }))
	res := blocked.Submit(context.Background())
	assert.True(t, res.Ignored)
	assert.Equal(t, StateIdle, res.State)
	assert.Zero(t, rec.calls.Load())
}

func TestReset(t *testing.T) {
	rec := &recorder{errs: []error{errBoom}}
	c := New("register", filledRegister(), rec.action)

	c.Submit(context.Background())
	require.Equal(t, StateFailed, c.State())

	c.Reset()
	assert.Equal(t, StateIdle, c.State())
	assert.NoError(t, c.LastError())
	assert.False(t, c.CanRetry())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "validating", StateValidating.String())
	assert.Equal(t, "invalid", StateInvalid.String())
	assert.Equal(t, "in-flight", StateInFlight.String())
	assert.Equal(t, "succeeded", StateSucceeded.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(42).String())
}
