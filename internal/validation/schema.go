package validation

// Client form field names
const (
	FieldCompanyName   = "company_name"
	FieldContactPerson = "contact_person"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldAddress       = "address"
	FieldIndustry      = "industry"
	FieldNotes         = "notes"
)

// Profile form field names
const (
	FieldFullName = "full_name"
	FieldTitle    = "title"
)

// ClientSchema is the rule set for creating or editing a client
func ClientSchema() Schema {
	return Schema{
		FieldCompanyName:   {Required().WithMessage("Company name is required"), MinLength(2), MaxLength(100)},
		FieldContactPerson: {MaxLength(100)},
		FieldEmail:         {Email(), MaxLength(254)},
		FieldPhone:         {Phone()},
		FieldAddress:       {MaxLength(255)},
		FieldIndustry:      {MaxLength(100)},
		FieldNotes:         {MaxLength(1000)},
	}
}

// ProfileSchema is the rule set for the profile section of preferences
func ProfileSchema() Schema {
	return Schema{
		FieldFullName: {MaxLength(100)},
		FieldEmail:    {Email(), MaxLength(254)},
		FieldPhone:    {Phone()},
		FieldTitle:    {MaxLength(100)},
	}
}
