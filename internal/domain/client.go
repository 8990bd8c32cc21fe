package domain

import (
	"errors"
	"strings"
	"time"
)

type Client struct {
	ID            string
	CompanyName   string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Industry      string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ClientInput is the raw data submitted when creating a client
type ClientInput struct {
	CompanyName   string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Industry      string
	Notes         string
	CreatedBy     string
}

// ClientPatch holds the fields to change on an existing client; nil means unchanged
type ClientPatch struct {
	CompanyName   *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
	Industry      *string
	Notes         *string
}

// NormalizeName is the comparison key for duplicate detection:
// trimmed and lowercased, internal spacing and punctuation kept as-is.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewClient creates a client from input with trimmed values
func NewClient(in ClientInput) *Client {
	now := time.Now().UTC()
	return &Client{
		CompanyName:   strings.TrimSpace(in.CompanyName),
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
		Industry:      strings.TrimSpace(in.Industry),
		Notes:         strings.TrimSpace(in.Notes),
		CreatedBy:     in.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate returns an error if the client cannot be stored
func (c *Client) Validate() error {
	if strings.TrimSpace(c.CompanyName) == "" {
		return errors.New("company name is required")
	}
	return nil
}

// MergePatch builds a patch carrying the non-empty, non-name fields of in.
// Used when a duplicate is merged into an existing record.
func MergePatch(in ClientInput) ClientPatch {
	var p ClientPatch
	set := func(dst **string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = &v
		}
	}
	set(&p.ContactPerson, in.ContactPerson)
	set(&p.Email, in.Email)
	set(&p.Phone, in.Phone)
	set(&p.Address, in.Address)
	set(&p.Industry, in.Industry)
	set(&p.Notes, in.Notes)
	return p
}

// IsEmpty reports whether the patch changes nothing
func (p ClientPatch) IsEmpty() bool {
	return p.CompanyName == nil && p.ContactPerson == nil && p.Email == nil &&
		p.Phone == nil && p.Address == nil && p.Industry == nil && p.Notes == nil
}

// Apply writes the patch onto c
func (p ClientPatch) Apply(c *Client) {
	if p.CompanyName != nil {
		c.CompanyName = strings.TrimSpace(*p.CompanyName)
	}
	if p.ContactPerson != nil {
		c.ContactPerson = *p.ContactPerson
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Industry != nil {
		c.Industry = *p.Industry
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
}
