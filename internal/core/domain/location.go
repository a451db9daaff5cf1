package domain

import (
	"strings"
	"unicode"
)

// Location is a postal address as the application models it. Country may hold
// either an ISO-3166 alpha-2 code or an English country name.
type Location struct {
	Name       string `json:"name,omitempty" bson:"name,omitempty" yaml:"name"`
	Company    string `json:"company,omitempty" bson:"company,omitempty" yaml:"company"`
	Phone      string `json:"phone,omitempty" bson:"phone,omitempty" yaml:"phone"`
	Address1   string `json:"address1,omitempty" bson:"address1,omitempty" yaml:"address1"`
	Address2   string `json:"address2,omitempty" bson:"address2,omitempty" yaml:"address2"`
	Address3   string `json:"address3,omitempty" bson:"address3,omitempty" yaml:"address3"`
	City       string `json:"city,omitempty" bson:"city,omitempty" yaml:"city"`
	Province   string `json:"province,omitempty" bson:"province,omitempty" yaml:"province"`
	Country    string `json:"country,omitempty" bson:"country,omitempty" yaml:"country"`
	PostalCode string `json:"postal_code,omitempty" bson:"postal_code,omitempty" yaml:"postal_code"`
}

// CountryCode returns the upper-case ISO alpha-2 code for the location, looking
// the country up by name when it is not already a code. It returns "" when the
// country cannot be resolved.
func (l Location) CountryCode() string {
	return LookupCountryCode(l.Country)
}

// SanitizedPostalCode strips every whitespace rune and upper-cases the result.
func (l Location) SanitizedPostalCode() string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, l.PostalCode))
}

// Address2And3 joins the second and third address lines, skipping blanks.
func (l Location) Address2And3() string {
	parts := make([]string, 0, 2)
	for _, line := range []string{l.Address2, l.Address3} {
		if s := strings.TrimSpace(line); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// IsZero reports whether no field of the location is set.
func (l Location) IsZero() bool {
	return l == Location{}
}

// String renders the location the way a carrier label would print it, one
// segment per non-empty field.
func (l Location) String() string {
	segments := []string{l.Name, l.Company, l.Address1, l.Address2And3(), l.City, l.Province, l.SanitizedPostalCode(), l.Country}
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, ", ")
}
