// Package form holds the input state of a screen: field values, the rules
// each field must satisfy and the validation errors derived from them.
package form

import (
	"maps"
	"sync"
)

// Field names an input of a form.
type Field string

// Values maps fields to their current text.
type Values map[Field]string

// Errors maps fields to a user-facing message. A field without an entry is
// valid.
type Errors map[Field]string

// Spec declares a field and its rules, evaluated in order.
type Spec struct {
	Name  Field
	Rules []Rule
}

// Form is safe for concurrent use.
type Form struct {
	mu     sync.RWMutex
	live   bool
	specs  []Spec
	values Values
	errors Errors
}

// New builds a form with empty values. When live is true, Set re-validates
// the changed field immediately.
func New(live bool, specs ...Spec) *Form {
	f := &Form{
		live:   live,
		specs:  specs,
		values: make(Values, len(specs)),
		errors: make(Errors),
	}
	for _, s := range specs {
		f.values[s.Name] = ""
	}
	return f
}

// Fields lists the declared fields in declaration order.
func (f *Form) Fields() []Field {
	out := make([]Field, len(f.specs))
	for i, s := range f.specs {
		out[i] = s.Name
	}
	return out
}

func (f *Form) Set(field Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[field] = value
	if f.live {
		f.validateLocked(field)
	}
}

func (f *Form) Value(field Field) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values[field]
}

// Values returns a copy of all values.
func (f *Form) Values() Values {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return maps.Clone(f.values)
}

// Errors returns a copy of the current errors.
func (f *Form) Errors() Errors {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return maps.Clone(f.errors)
}

func (f *Form) Error(field Field) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.errors[field]
}

// ValidateField re-checks one field and reports whether it is valid.
func (f *Form) ValidateField(field Field) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked(field)
}

// ValidateAll re-checks every field and replaces the error map with the
// result, which it also returns.
func (f *Form) ValidateAll() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := make(Errors)
	for _, s := range f.specs {
		if msg := check(s.Rules, f.values[s.Name]); msg != "" {
			errs[s.Name] = msg
		}
	}
	f.errors = errs
	return maps.Clone(errs)
}

// IsValid evaluates every rule without touching the error map.
func (f *Form) IsValid() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, s := range f.specs {
		if check(s.Rules, f.values[s.Name]) != "" {
			return false
		}
	}
	return true
}

// Load replaces all values and clears the errors. Declared fields missing
// from values become empty.
func (f *Form) Load(values Values) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values = make(Values, len(f.specs))
	for _, s := range f.specs {
		f.values[s.Name] = values[s.Name]
	}
	f.errors = make(Errors)
}

func (f *Form) validateLocked(field Field) bool {
	for _, s := range f.specs {
		if s.Name != field {
			continue
		}
		if msg := check(s.Rules, f.values[field]); msg != "" {
			f.errors[field] = msg
			return false
		}
		break
	}
	delete(f.errors, field)
	return true
}

func check(rules []Rule, value string) string {
	for _, r := range rules {
		if msg := r(value); msg != "" {
			return msg
		}
	}
	return ""
}
