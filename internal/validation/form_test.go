package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_SetValueDoesNotTouch(t *testing.T) {
	f := NewForm(ClientSchema(), nil)

	f.SetValue(FieldEmail, "bad")
	assert.False(t, f.Touched(FieldEmail))
	assert.Equal(t, []string{"Please enter a valid email address"}, f.Errors(FieldEmail))
	assert.Nil(t, f.VisibleErrors(FieldEmail), "untouched field hides errors")

	f.SetTouched(FieldEmail)
	assert.Equal(t, f.Errors(FieldEmail), f.VisibleErrors(FieldEmail))

	f.SetValue(FieldEmail, "ok@acme.io")
	assert.Empty(t, f.Errors(FieldEmail))
}

func TestForm_ValidateFormIncludesUntouchedFields(t *testing.T) {
	f := NewForm(ClientSchema(), map[string]string{
		FieldCompanyName: "Acme Corp",
		FieldPhone:       "abc",
	})

	// Nothing touched and no SetValue yet: invalid initial content must still block
	assert.False(t, f.ValidateForm())
	assert.True(t, f.HasErrors())
	assert.Equal(t, []string{"Please enter a valid phone number"}, f.Errors(FieldPhone))

	var verr *Error
	require.True(t, errors.As(f.Err(), &verr))
	assert.Contains(t, verr.Fields, FieldPhone)

	f.SetValue(FieldPhone, "")
	assert.True(t, f.ValidateForm())
	assert.False(t, f.HasErrors())
	assert.NoError(t, f.Err())
}

func TestForm_ValidateFormMatchesRuleFailures(t *testing.T) {
	cases := []struct {
		values map[string]string
		valid  bool
	}{
		{map[string]string{FieldCompanyName: "Acme"}, true},
		{map[string]string{FieldCompanyName: "A"}, false},
		{map[string]string{}, false},
		{map[string]string{FieldCompanyName: "Acme", FieldNotes: strings.Repeat("x", 1001)}, false},
		{map[string]string{FieldCompanyName: "Acme", FieldEmail: "a@b.co", FieldPhone: "+44 20 7946 0958"}, true},
	}

	for i, c := range cases {
		f := NewForm(ClientSchema(), c.values)
		want := len(ValidateFields(c.values, ClientSchema())) == 0
		require.Equal(t, c.valid, want, "case %d", i)
		assert.Equal(t, want, f.ValidateForm(), "case %d", i)
	}
}

func TestForm_Reset(t *testing.T) {
	f := NewForm(ClientSchema(), map[string]string{FieldCompanyName: "Acme"})
	f.SetValue(FieldCompanyName, "")
	f.SetTouched(FieldCompanyName)
	f.ValidateForm()

	f.Reset()
	assert.Equal(t, "Acme", f.Value(FieldCompanyName))
	assert.False(t, f.Touched(FieldCompanyName))
	assert.False(t, f.HasErrors())
}

func TestForm_ValuesIsACopy(t *testing.T) {
	f := NewForm(ClientSchema(), map[string]string{FieldCompanyName: "Acme"})
	v := f.Values()
	v[FieldCompanyName] = "changed"
	assert.Equal(t, "Acme", f.Value(FieldCompanyName))
}
