package cli

import (
	"context"

	"github.com/dmitrijs2005/favfood/internal/client/form"
)

// getLine and getPassword are indirections used to facilitate testing.
var (
	getLine     = GetLine
	getPassword = GetPassword
)

// Login asks for the credentials, showing each field's error as soon as it
// is typed, and signs in when the form is complete. On success the home
// screen opens and the profile is loaded.
func (a *App) Login(ctx context.Context) error {
	a.navigate(ScreenLogin)

	email, err := getLine(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	a.loginForm.Set(form.FieldEmail, email)
	a.printFieldError(a.loginForm, form.FieldEmail)

	password, err := getPassword(a.reader, "Contraseña", a.out)
	if err != nil {
		return err
	}
	a.loginForm.Set(form.FieldPassword, password)
	a.printFieldError(a.loginForm, form.FieldPassword)

	if !a.login.CanSubmit() {
		a.println("Completa el formulario para iniciar sesión.")
		return nil
	}

	a.settle(ctx, a.login, a.login.Submit(ctx))

	if a.currentScreen() == ScreenHome {
		a.loadProfile(ctx)
	}
	return nil
}

// Register asks for an email and a password and creates the account. On
// success the login screen opens; otherwise the user stays on the register
// screen with the inputs kept.
func (a *App) Register(ctx context.Context) error {
	a.navigate(ScreenRegister)

	email, err := getLine(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	a.registerForm.Set(form.FieldEmail, email)

	password, err := getPassword(a.reader, "Contraseña", a.out)
	if err != nil {
		return err
	}
	a.registerForm.Set(form.FieldPassword, password)

	a.settle(ctx, a.register, a.register.Submit(ctx))
	return nil
}

// Logout signs out and returns to the login screen.
func (a *App) Logout(ctx context.Context) error {
	a.settle(ctx, a.signOut, a.signOut.Submit(ctx))
	return nil
}

func (a *App) printFieldError(f *form.Form, field form.Field) {
	if msg := f.Error(field); msg != "" {
		a.println("  ! " + msg)
	}
}
