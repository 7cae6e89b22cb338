package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/favfood/internal/client/form"
	"github.com/dmitrijs2005/favfood/internal/client/media"
)

var profileLabels = map[form.Field]string{
	form.FieldFirstName:    "Nombre",
	form.FieldLastName:     "Apellido",
	form.FieldFavoriteFood: "Comida favorita",
}

// loadProfile fetches the profile into the home form and shows it.
func (a *App) loadProfile(ctx context.Context) {
	res := a.settle(ctx, a.profileLoad, a.profileLoad.Submit(ctx))
	if res.Err == nil && !res.Ignored {
		_ = a.Show(ctx)
	}
	a.expireSession(ctx, res)
}

// Show prints the profile as currently held by the form.
func (a *App) Show(ctx context.Context) error {
	for _, f := range []form.Field{form.FieldFirstName, form.FieldLastName, form.FieldFavoriteFood} {
		a.println(fmt.Sprintf("%s: %s", profileLabels[f], a.profileForm.Value(f)))
	}

	photo := "no"
	if p := a.profileForm.Value(form.FieldPhoto); p != "" {
		photo = fmt.Sprintf("sí (%d KB)", (len(p)+1023)/1024)
	}
	a.println("Foto: " + photo)
	return nil
}

// Edit asks for each mandatory field. An empty answer keeps the current
// value. Nothing is saved until Save.
func (a *App) Edit(ctx context.Context) error {
	for _, f := range []form.Field{form.FieldFirstName, form.FieldLastName, form.FieldFavoriteFood} {
		current := a.profileForm.Value(f)
		v, err := getLine(a.reader, fmt.Sprintf("%s [%s]", profileLabels[f], current), a.out)
		if err != nil {
			return err
		}
		if v != "" {
			a.profileForm.Set(f, v)
		}
	}
	return nil
}

// Photo selects an image from the device, downsized and compressed, to be
// saved with the profile.
func (a *App) Photo(ctx context.Context) error {
	path, err := getLine(a.reader, "Ruta de la imagen (vacío para cancelar)", a.out)
	if err != nil {
		return err
	}

	uri, err := a.picker.Select(path)
	if err != nil {
		if errors.Is(err, media.ErrCancelled) {
			a.println("Selección cancelada")
			return nil
		}
		a.logger.Warn(ctx, "photo not selected", "error", err)
		a.println("[Error] No se pudo cargar la imagen")
		return err
	}

	a.profileForm.Set(form.FieldPhoto, uri)
	a.println("Foto seleccionada. Usa 'save' para guardarla.")
	return nil
}

// Save writes the whole profile. It is blocked, without contacting the
// server, while any mandatory field is empty.
func (a *App) Save(ctx context.Context) error {
	res := a.settle(ctx, a.profileUpdate, a.profileUpdate.Submit(ctx))
	a.expireSession(ctx, res)
	return nil
}

// Reload fetches the profile again, discarding unsaved edits.
func (a *App) Reload(ctx context.Context) error {
	a.loadProfile(ctx)
	return nil
}
