package form

const (
	FieldEmail    Field = "email"
	FieldPassword Field = "password"

	FieldFirstName    Field = "firstName"
	FieldLastName     Field = "lastName"
	FieldFavoriteFood Field = "favoriteFood"
	FieldPhoto        Field = "photo"
)

const (
	MsgEmailRequired    = "El email es requerido"
	MsgEmailInvalid     = "Formato de email inválido"
	MsgPasswordRequired = "La contraseña es requerida"
	MsgPasswordWeak     = "La contraseña debe tener al menos 8 caracteres, incluyendo mayúsculas, minúsculas, números y símbolos."
	MsgAllRequired      = "Todos los campos son obligatorios"
)

// NewLoginForm validates each field as it is typed.
func NewLoginForm() *Form {
	return New(true,
		Spec{Name: FieldEmail, Rules: []Rule{Required(MsgEmailRequired), Email(MsgEmailInvalid)}},
		Spec{Name: FieldPassword, Rules: []Rule{Required(MsgPasswordRequired)}},
	)
}

// NewRegisterForm validates on submit only.
func NewRegisterForm() *Form {
	return New(false,
		Spec{Name: FieldEmail, Rules: []Rule{RequiredRaw(MsgEmailRequired), Email(MsgEmailInvalid)}},
		Spec{Name: FieldPassword, Rules: []Rule{RequiredRaw(MsgPasswordRequired), StrongPassword(MsgPasswordWeak)}},
	)
}

// NewProfileForm holds the three mandatory profile fields and the optional
// photo.
func NewProfileForm() *Form {
	return New(false,
		Spec{Name: FieldFirstName, Rules: []Rule{RequiredRaw(MsgAllRequired)}},
		Spec{Name: FieldLastName, Rules: []Rule{RequiredRaw(MsgAllRequired)}},
		Spec{Name: FieldFavoriteFood, Rules: []Rule{RequiredRaw(MsgAllRequired)}},
		Spec{Name: FieldPhoto},
	)
}
