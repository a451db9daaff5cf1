package domain

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var (
	countryNamesOnce sync.Once
	countryByName    map[string]string
)

// LookupCountryCode resolves a country code or English country name into an
// ISO alpha-2 code. Unknown input yields "".
func LookupCountryCode(country string) string {
	c := strings.TrimSpace(country)
	if c == "" {
		return ""
	}
	if len(c) == 2 {
		if region, err := language.ParseRegion(c); err == nil && region.IsCountry() {
			return region.String()
		}
	}

	countryNamesOnce.Do(buildCountryNames)
	return countryByName[strings.ToLower(c)]
}

// buildCountryNames enumerates every two-letter region x/text knows about and
// indexes it by its English display name.
func buildCountryNames() {
	names := display.English.Regions()
	countryByName = make(map[string]string, 300)
	for a := 'A'; a <= 'Z'; a++ {
		for b := 'A'; b <= 'Z'; b++ {
			region, err := language.ParseRegion(string([]rune{a, b}))
			if err != nil || !region.IsCountry() {
				continue
			}
			code := region.String()
			if name := names.Name(region); name != "" {
				countryByName[strings.ToLower(name)] = code
			}
		}
	}
	// Common aliases the display tables spell differently.
	for alias, code := range map[string]string{
		"usa":                      "US",
		"united states of america": "US",
		"uk":                       "GB",
		"great britain":            "GB",
	} {
		countryByName[alias] = code
	}
}
