package validation

// Form holds the values and touched flags of one form instance.
// Errors are always derived from the current values, never edited directly.
type Form struct {
	schema  Schema
	initial map[string]string
	values  map[string]string
	touched map[string]bool
	errors  map[string][]string
}

// NewForm creates a form over schema, seeded with initial values
func NewForm(schema Schema, initial map[string]string) *Form {
	f := &Form{
		schema:  schema,
		initial: copyValues(initial),
	}
	f.Reset()
	return f
}

func copyValues(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// SetValue overwrites a field's value. It does not mark the field touched.
func (f *Form) SetValue(field, value string) {
	f.values[field] = value
	if errs := Validate(value, f.schema[field]); len(errs) > 0 {
		f.errors[field] = errs
	} else {
		delete(f.errors, field)
	}
}

// SetTouched marks a field as interacted with
func (f *Form) SetTouched(field string) {
	f.touched[field] = true
}

// Touched reports whether the field was interacted with
func (f *Form) Touched(field string) bool {
	return f.touched[field]
}

// Value returns the current raw value of a field
func (f *Form) Value(field string) string {
	return f.values[field]
}

// Values returns a copy of all current values
func (f *Form) Values() map[string]string {
	return copyValues(f.values)
}

// ValidateForm recomputes errors for every field in the schema,
// touched or not, and reports whether the form is error-free.
func (f *Form) ValidateForm() bool {
	f.errors = ValidateFields(f.values, f.schema)
	return len(f.errors) == 0
}

// HasErrors reports whether any field currently fails a rule
func (f *Form) HasErrors() bool {
	return len(f.errors) > 0
}

// Errors returns the failing messages for a field
func (f *Form) Errors(field string) []string {
	return f.errors[field]
}

// VisibleErrors returns a field's errors only once it has been touched
func (f *Form) VisibleErrors(field string) []string {
	if !f.touched[field] {
		return nil
	}
	return f.errors[field]
}

// Err returns the current errors as an *Error, or nil when valid
func (f *Form) Err() error {
	if len(f.errors) == 0 {
		return nil
	}
	fields := make(map[string][]string, len(f.errors))
	for k, v := range f.errors {
		fields[k] = append([]string(nil), v...)
	}
	return &Error{Fields: fields}
}

// Reset restores initial values and clears touched flags and errors
func (f *Form) Reset() {
	f.values = copyValues(f.initial)
	f.touched = make(map[string]bool)
	f.errors = make(map[string][]string)
}
