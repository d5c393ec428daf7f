package peopledata

import "strings"

// placeholderEmailMarker appears in the email field of search results whose
// address has not been revealed yet.
const placeholderEmailMarker = "email_not_unlocked"

// PhoneNumber is one entry of a person's phone number list.
type PhoneNumber struct {
	RawNumber       string `json:"raw_number"`
	SanitizedNumber string `json:"sanitized_number"`
	Type            string `json:"type"`
}

// PrimaryPhone is an organization's switchboard number.
type PrimaryPhone struct {
	Number          string `json:"number"`
	SanitizedNumber string `json:"sanitized_number"`
}

// Organization is the employer record nested in a person.
type Organization struct {
	Name                  string        `json:"name"`
	Industry              string        `json:"industry"`
	WebsiteURL            string        `json:"website_url"`
	Phone                 string        `json:"phone"`
	EstimatedNumEmployees int           `json:"estimated_num_employees"`
	PrimaryPhone          *PrimaryPhone `json:"primary_phone"`
}

// Person is a people-database record, returned by both search and enrich.
// Search results carry locked emails; enriched records carry real ones.
type Person struct {
	ID             string        `json:"id"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	Name           string        `json:"name"`
	Title          string        `json:"title"`
	City           string        `json:"city"`
	State          string        `json:"state"`
	Country        string        `json:"country"`
	LinkedinURL    string        `json:"linkedin_url"`
	Headline       string        `json:"headline"`
	PhotoURL       string        `json:"photo_url"`
	Email          string        `json:"email"`
	EmailStatus    string        `json:"email_status"`
	Phone          string        `json:"phone"`
	PhoneNumbers   []PhoneNumber `json:"phone_numbers"`
	PersonalEmails []string      `json:"personal_emails"`
	Organization   *Organization `json:"organization"`
}

// DisplayName returns the full name, composing it from first/last when the
// name field is empty.
func (p Person) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Location joins city, state and country, skipping empty parts.
func (p Person) Location() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.City, p.State, p.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// BestEmail returns the revealed email address. The direct field wins unless
// it is the locked placeholder, then the first personal email is used.
func (p Person) BestEmail() (string, bool) {
	if p.Email != "" && !strings.Contains(p.Email, placeholderEmailMarker) {
		return p.Email, true
	}
	if len(p.PersonalEmails) > 0 && p.PersonalEmails[0] != "" {
		return p.PersonalEmails[0], true
	}
	return "", false
}

// BestPhone returns a phone number, preferring the direct field, then the
// first entry of the phone number list, then the employer's primary phone.
func (p Person) BestPhone() (string, bool) {
	if p.Phone != "" {
		return p.Phone, true
	}
	if len(p.PhoneNumbers) > 0 {
		if n := p.PhoneNumbers[0].RawNumber; n != "" {
			return n, true
		}
		if n := p.PhoneNumbers[0].SanitizedNumber; n != "" {
			return n, true
		}
	}
	if p.Organization != nil && p.Organization.PrimaryPhone != nil {
		if n := p.Organization.PrimaryPhone.Number; n != "" {
			return n, true
		}
	}
	return "", false
}

// EmployerName returns the nested organization name, if any.
func (p Person) EmployerName() string {
	if p.Organization == nil {
		return ""
	}
	return p.Organization.Name
}

// IndustryName returns the nested organization industry, if any.
func (p Person) IndustryName() string {
	if p.Organization == nil {
		return ""
	}
	return p.Organization.Industry
}
