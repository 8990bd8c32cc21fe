// Package validation evaluates raw form input against ordered rule lists.
//
// Every rule except Required treats an empty (or whitespace-only) value as
// not applicable, so optional fields only fail when they hold malformed input.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Rule is a named predicate over a raw string value
type Rule struct {
	Name    string
	Message string
	check   func(string) bool
}

// Passes reports whether value satisfies the rule
func (r Rule) Passes(value string) bool {
	if r.Name != RuleRequired && isBlank(value) {
		return true
	}
	return r.check(value)
}

// Rule identifiers
const (
	RuleRequired       = "required"
	RuleMinLength      = "minLength"
	RuleMaxLength      = "maxLength"
	RuleEmail          = "email"
	RulePhone          = "phone"
	RuleCurrency       = "currency"
	RulePositiveNumber = "positiveNumber"
	RulePattern        = "pattern"
)

var (
	emailRx    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRx    = regexp.MustCompile(`^\+?[0-9\s\-().]+$`)
	currencyRx = regexp.MustCompile(`^\$?(\d{1,3}(,\d{3})+|\d+)(\.\d{1,2})?$`)
)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Required fails on empty or whitespace-only values
func Required() Rule {
	return Rule{
		Name:    RuleRequired,
		Message: "This field is required",
		check:   func(v string) bool { return !isBlank(v) },
	}
}

// MinLength fails when the trimmed value has fewer than n characters
func MinLength(n int) Rule {
	return Rule{
		Name:    RuleMinLength,
		Message: fmt.Sprintf("Must be at least %d characters", n),
		check:   func(v string) bool { return utf8.RuneCountInString(strings.TrimSpace(v)) >= n },
	}
}

// MaxLength fails when the trimmed value has more than n characters
func MaxLength(n int) Rule {
	return Rule{
		Name:    RuleMaxLength,
		Message: fmt.Sprintf("Must be no more than %d characters", n),
		check:   func(v string) bool { return utf8.RuneCountInString(strings.TrimSpace(v)) <= n },
	}
}

// Email accepts local@domain.tld with no whitespace
func Email() Rule {
	return Rule{
		Name:    RuleEmail,
		Message: "Please enter a valid email address",
		check:   func(v string) bool { return emailRx.MatchString(strings.TrimSpace(v)) },
	}
}

// Phone accepts digits with optional +, spaces, dashes, dots and
// parentheses, holding 7 to 15 digits
func Phone() Rule {
	return Rule{
		Name:    RulePhone,
		Message: "Please enter a valid phone number",
		check: func(v string) bool {
			v = strings.TrimSpace(v)
			if !phoneRx.MatchString(v) {
				return false
			}
			digits := 0
			for _, r := range v {
				if r >= '0' && r <= '9' {
					digits++
				}
			}
			return digits >= 7 && digits <= 15
		},
	}
}

// Currency accepts a non-negative amount with optional $, thousands
// separators and at most two decimals
func Currency() Rule {
	return Rule{
		Name:    RuleCurrency,
		Message: "Please enter a valid amount",
		check:   func(v string) bool { return currencyRx.MatchString(strings.TrimSpace(v)) },
	}
}

// PositiveNumber requires a number strictly greater than zero
func PositiveNumber() Rule {
	return Rule{
		Name:    RulePositiveNumber,
		Message: "Must be a positive number",
		check: func(v string) bool {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			return err == nil && f > 0
		},
	}
}

// Pattern fails when the trimmed value does not match re
func Pattern(re *regexp.Regexp, message string) Rule {
	return Rule{
		Name:    RulePattern,
		Message: message,
		check:   func(v string) bool { return re.MatchString(strings.TrimSpace(v)) },
	}
}

// WithMessage returns a copy of r reporting msg on failure
func (r Rule) WithMessage(msg string) Rule {
	r.Message = msg
	return r
}

// Validate returns one message per failing rule, in rule order
func Validate(value string, rules []Rule) []string {
	var errs []string
	for _, r := range rules {
		if !r.Passes(value) {
			errs = append(errs, r.Message)
		}
	}
	return errs
}

// Schema maps a field name to its ordered rules
type Schema map[string][]Rule

// ValidateFields validates every field in schema against values.
// Fields missing from values are validated as empty. Passing fields are omitted.
func ValidateFields(values map[string]string, schema Schema) map[string][]string {
	out := make(map[string][]string)
	for field, rules := range schema {
		if errs := Validate(values[field], rules); len(errs) > 0 {
			out[field] = errs
		}
	}
	return out
}
