package form

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginForm_LiveValidation(t *testing.T) {
	f := NewLoginForm()

	f.Set(FieldEmail, "ana")
	assert.Equal(t, MsgEmailInvalid, f.Error(FieldEmail))
	assert.Empty(t, f.Error(FieldPassword), "only the changed field is validated")

	f.Set(FieldEmail, "   ")
	assert.Equal(t, MsgEmailRequired, f.Error(FieldEmail))

	f.Set(FieldEmail, "user.test@xyz.com")
	assert.Empty(t, f.Errors())

	assert.False(t, f.IsValid())
	f.Set(FieldPassword, "x")
	assert.True(t, f.IsValid())
}

func TestLoginForm_PasswordTrimmed(t *testing.T) {
	f := NewLoginForm()
	f.Set(FieldEmail, "a@b.co")
	f.Set(FieldPassword, "  ")
	assert.Equal(t, MsgPasswordRequired, f.Error(FieldPassword))
}

func TestRegisterForm_ValidatesOnSubmitOnly(t *testing.T) {
	f := NewRegisterForm()

	f.Set(FieldEmail, "bad")
	f.Set(FieldPassword, "abcdefgh")
	assert.Empty(t, f.Errors())

	errs := f.ValidateAll()
	assert.Equal(t, Errors{FieldEmail: MsgEmailInvalid, FieldPassword: MsgPasswordWeak}, errs)
	assert.Equal(t, errs, f.Errors())

	f.Set(FieldEmail, "user.test@xyz.com")
	f.Set(FieldPassword, "Abc123!@")
	assert.Empty(t, f.ValidateAll())
	assert.Empty(t, f.Errors(), "errors are replaced on every pass")
}

func TestRegisterForm_RawEmptiness(t *testing.T) {
	f := NewRegisterForm()

	errs := f.ValidateAll()
	assert.Equal(t, MsgEmailRequired, errs[FieldEmail])
	assert.Equal(t, MsgPasswordRequired, errs[FieldPassword])

	// Whitespace is not "empty" here, so the format rule answers instead.
	f.Set(FieldEmail, " ")
	f.Set(FieldPassword, " ")
	errs = f.ValidateAll()
	assert.Equal(t, MsgEmailInvalid, errs[FieldEmail])
	assert.Equal(t, MsgPasswordWeak, errs[FieldPassword])
}

func TestProfileForm(t *testing.T) {
	f := NewProfileForm()
	assert.Equal(t, []Field{FieldFirstName, FieldLastName, FieldFavoriteFood, FieldPhoto}, f.Fields())

	f.Set(FieldFirstName, "Ana")
	f.Set(FieldLastName, "Pérez")
	errs := f.ValidateAll()
	assert.Equal(t, Errors{FieldFavoriteFood: MsgAllRequired}, errs)

	f.Set(FieldFavoriteFood, "Paella")
	assert.True(t, f.IsValid(), "photo is optional")
}

func TestValidateField(t *testing.T) {
	f := NewRegisterForm()

	assert.False(t, f.ValidateField(FieldEmail))
	assert.Equal(t, MsgEmailRequired, f.Error(FieldEmail))
	assert.Empty(t, f.Error(FieldPassword))

	f.Set(FieldEmail, "a@b.co")
	assert.True(t, f.ValidateField(FieldEmail))
	assert.Empty(t, f.Errors())

	assert.True(t, f.ValidateField("unknown"))
}

func TestIsValid_DoesNotTouchErrors(t *testing.T) {
	f := NewRegisterForm()
	assert.False(t, f.IsValid())
	assert.Empty(t, f.Errors())
}

func TestLoad(t *testing.T) {
	f := NewProfileForm()
	f.ValidateAll()
	require.NotEmpty(t, f.Errors())

	f.Load(Values{FieldFirstName: "Ana", FieldLastName: "Pérez", FieldFavoriteFood: "Paella", "other": "x"})

	assert.Empty(t, f.Errors())
	assert.Equal(t, Values{
		FieldFirstName:    "Ana",
		FieldLastName:     "Pérez",
		FieldFavoriteFood: "Paella",
		FieldPhoto:        "",
	}, f.Values())
}

func TestValuesAndErrorsAreCopies(t *testing.T) {
	f := NewRegisterForm()
	f.Set(FieldEmail, "a@b.co")

	v := f.Values()
	v[FieldEmail] = "changed"
	assert.Equal(t, "a@b.co", f.Value(FieldEmail))

	e := f.ValidateAll()
	e[FieldEmail] = "changed"
	assert.Empty(t, f.Error(FieldEmail))
}

func TestConcurrentAccess(t *testing.T) {
	f := NewLoginForm()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			f.Set(FieldEmail, "a@b.co")
		}()
		go func() {
			defer wg.Done()
			_ = f.IsValid()
			_ = f.ValidateAll()
		}()
	}
	wg.Wait()

	assert.Equal(t, "a@b.co", f.Value(FieldEmail))
}
