package validation

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestValidate_OrderFollowsRules(t *testing.T) {
	rules := []Rule{MaxLength(3), Email(), MinLength(2)}

	got := Validate("abcdef", rules)
	want := []string{"Must be no more than 3 characters", "Please enter a valid email address"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Validate() mismatch (-want +got):\n%s", diff)
	}

	reversed := []Rule{Email(), MaxLength(3)}
	got = Validate("abcdef", reversed)
	assert.Equal(t, []string{"Please enter a valid email address", "Must be no more than 3 characters"}, got)
}

func TestValidate_EmptyPassesNonRequiredRules(t *testing.T) {
	nonRequired := []Rule{
		MinLength(5), MaxLength(1), Email(), Phone(), Currency(), PositiveNumber(),
		Pattern(regexp.MustCompile(`^x+$`), "only x"),
	}

	for _, v := range []string{"", "   ", "\t\n"} {
		assert.Empty(t, Validate(v, nonRequired), "value %q", v)
	}

	assert.Equal(t, []string{"This field is required"}, Validate("  ", []Rule{Required(), Email()}))
}

func TestRules(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		value string
		pass  bool
	}{
		{"required ok", Required(), "Acme", true},
		{"required blank", Required(), " ", false},
		{"min ok", MinLength(2), "Ab", true},
		{"min short", MinLength(2), "A", false},
		{"min trims", MinLength(3), " ab ", false},
		{"max ok", MaxLength(5), "héllo", true},
		{"max long", MaxLength(4), "hello", false},
		{"email ok", Email(), "sam@acme.io", true},
		{"email padded", Email(), " sam@acme.io ", true},
		{"email no tld", Email(), "sam@acme", false},
		{"email space", Email(), "sam smith@acme.io", false},
		{"phone intl", Phone(), "+1 (555) 123-4567", true},
		{"phone dots", Phone(), "555.123.4567", true},
		{"phone short", Phone(), "12345", false},
		{"phone letters", Phone(), "555-CALL-NOW", false},
		{"phone too long", Phone(), "1234567890123456", false},
		{"currency plain", Currency(), "1500", true},
		{"currency dollars", Currency(), "$1,500.50", true},
		{"currency bad commas", Currency(), "1,50", false},
		{"currency three decimals", Currency(), "10.123", false},
		{"currency negative", Currency(), "-5", false},
		{"positive ok", PositiveNumber(), "0.5", true},
		{"positive zero", PositiveNumber(), "0", false},
		{"positive negative", PositiveNumber(), "-3", false},
		{"positive nan", PositiveNumber(), "abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.pass, tt.rule.Passes(tt.value))
		})
	}
}

func TestValidateFields(t *testing.T) {
	values := map[string]string{
		FieldCompanyName: "",
		FieldEmail:       "not-an-email",
		FieldPhone:       "",
	}

	got := ValidateFields(values, ClientSchema())
	want := map[string][]string{
		FieldCompanyName: {"Company name is required"},
		FieldEmail:       {"Please enter a valid email address"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ValidateFields() mismatch (-want +got):\n%s", diff)
	}
}

func TestError_Message(t *testing.T) {
	err := &Error{Fields: map[string][]string{
		"phone": {"bad phone"},
		"email": {"bad email", "too long"},
	}}
	assert.Equal(t, "validation failed: email: bad email; too long, phone: bad phone", err.Error())
}
