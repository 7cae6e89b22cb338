package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/favfood/internal/client/client"
	"github.com/dmitrijs2005/favfood/internal/client/form"
	"github.com/dmitrijs2005/favfood/internal/client/models"
	"github.com/dmitrijs2005/favfood/internal/client/submit"
)

var (
	noticeRegistered = submit.Notice{Title: "Registro Exitoso", Message: "Tu cuenta ha sido creada correctamente."}
	noticeSaved      = submit.Notice{Title: "Éxito", Message: "Perfil actualizado correctamente"}
	noticeExpired    = submit.Notice{Title: "Sesión expirada", Message: "Inicia sesión de nuevo."}
)

// sessionRejected reports errors that no retry can fix while signed in
// with the current tokens.
func sessionRejected(err error) bool {
	return errors.Is(err, client.ErrUnauthorized)
}

func loginNotices() submit.NoticeFunc {
	const title = "Error de Inicio de Sesión"
	return submit.CodeNotices(
		submit.Notice{Title: title, Message: "Verifica tu correo electrónico y contraseña."},
		map[error]submit.Notice{
			client.ErrInvalidCredentials: {Title: title, Message: "Contraseña incorrecta."},
			client.ErrUserNotFound:       {Title: title, Message: "No existe una cuenta con este correo."},
		})
}

func registerNotices() submit.NoticeFunc {
	const title = "Error de Registro"
	return submit.CodeNotices(
		submit.Notice{Title: title, Message: "No se pudo crear la cuenta. Inténtalo de nuevo."},
		map[error]submit.Notice{
			client.ErrEmailTaken: {Title: title, Message: "El correo ya está registrado."},
		})
}

func profileLoadNotices() submit.NoticeFunc {
	return submit.CodeNotices(
		submit.Notice{Title: "Error", Message: "No se pudo cargar el perfil"},
		map[error]submit.Notice{
			client.ErrNotFound:     {Title: "Perfil no encontrado", Message: "No se encontró información de perfil"},
			client.ErrUnauthorized: noticeExpired,
		})
}

// buildControllers creates one controller per submission the screens offer.
func (a *App) buildControllers() {
	a.login = submit.New("login", a.loginForm,
		func(ctx context.Context, in form.Values) error {
			return a.auth.SignIn(ctx, in[form.FieldEmail], in[form.FieldPassword])
		},
		submit.WithLogger(a.logger),
		submit.WithGate(func(f *form.Form) bool { return f.IsValid() }),
		submit.WithNotices(loginNotices()),
		submit.OnSuccess(func(form.Values) { a.navigate(ScreenHome) }),
	)

	a.register = submit.New("register", a.registerForm,
		func(ctx context.Context, in form.Values) error {
			return a.auth.Register(ctx, in[form.FieldEmail], in[form.FieldPassword])
		},
		submit.WithLogger(a.logger),
		submit.WithNotices(registerNotices()),
		submit.WithRetryable(func(err error) bool {
			return !errors.Is(err, client.ErrEmailTaken) && !errors.Is(err, client.ErrInvalidInput)
		}),
		submit.WithSuccess(noticeRegistered),
		submit.OnSuccess(func(form.Values) { a.navigate(ScreenLogin) }),
	)

	a.profileLoad = submit.New("profile-load", nil,
		func(ctx context.Context, _ form.Values) error {
			p, err := a.profiles.Load(ctx)
			if err != nil {
				return err
			}
			a.profileForm.Load(profileValues(p))
			return nil
		},
		submit.WithLogger(a.logger),
		submit.WithNotices(profileLoadNotices()),
		submit.WithRetryable(func(err error) bool {
			return !errors.Is(err, client.ErrNotFound) && !sessionRejected(err)
		}),
	)

	a.profileUpdate = submit.New("profile-update", a.profileForm,
		func(ctx context.Context, in form.Values) error {
			return a.profiles.Save(ctx, profileFromValues(in))
		},
		submit.WithLogger(a.logger),
		submit.WithNotices(submit.CodeNotices(
			submit.Notice{Title: "Error", Message: "No se pudo actualizar el perfil"},
			map[error]submit.Notice{client.ErrUnauthorized: noticeExpired},
		)),
		submit.WithRetryable(func(err error) bool { return !sessionRejected(err) }),
		submit.WithSuccess(noticeSaved),
	)

	a.signOut = submit.New("sign-out", nil,
		func(ctx context.Context, _ form.Values) error {
			return a.auth.SignOut(ctx)
		},
		submit.WithLogger(a.logger),
		submit.WithNotices(submit.GenericNotice("Error", "No se pudo cerrar sesión")),
		submit.OnSuccess(func(form.Values) { a.navigate(ScreenLogin) }),
	)
}

func profileValues(p *models.Profile) form.Values {
	return form.Values{
		form.FieldFirstName:    p.FirstName,
		form.FieldLastName:     p.LastName,
		form.FieldFavoriteFood: p.FavoriteFood,
		form.FieldPhoto:        p.Photo,
	}
}

func profileFromValues(in form.Values) *models.Profile {
	return &models.Profile{
		FirstName:    in[form.FieldFirstName],
		LastName:     in[form.FieldLastName],
		FavoriteFood: in[form.FieldFavoriteFood],
		Photo:        in[form.FieldPhoto],
	}
}

// settle reports a submission outcome. Validation errors are listed; a
// retryable failure offers Reintentar / Cancelar until the user cancels or
// a retry succeeds.
func (a *App) settle(ctx context.Context, c *submit.Controller, res submit.Result) submit.Result {
	for {
		switch {
		case res.Ignored:
			return res

		case res.State == submit.StateInvalid:
			a.printErrors(c.Form(), res.Errors)
			return res

		case res.State == submit.StateSucceeded:
			a.printNotice(res.Notice)
			return res

		case res.State == submit.StateFailed:
			a.printNotice(res.Notice)
			if !res.Retryable || !Confirm(a.reader, "(r) Reintentar / (c) Cancelar", a.out) {
				c.Reset()
				return res
			}
			res = c.Retry(ctx)

		default:
			return res
		}
	}
}

// expireSession drops a session the server rejected and returns to the
// login screen.
func (a *App) expireSession(ctx context.Context, res submit.Result) {
	if !sessionRejected(res.Err) {
		return
	}
	a.logger.Warn(ctx, "session rejected, signing out locally", "error", res.Err)
	a.auth.Forget(ctx)
	a.navigate(ScreenLogin)
}

func (a *App) printNotice(n submit.Notice) {
	if n.IsZero() {
		return
	}
	a.println("[" + n.Title + "] " + n.Message)
}

func (a *App) printErrors(f *form.Form, errs form.Errors) {
	if f == nil {
		return
	}
	shown := make(map[string]bool, len(errs))
	for _, field := range f.Fields() {
		msg, ok := errs[field]
		if !ok || shown[msg] {
			continue
		}
		shown[msg] = true
		a.println("  ! " + msg)
	}
}
