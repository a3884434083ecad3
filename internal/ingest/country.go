package ingest

import (
	"strings"

	"github.com/biter777/countries"
)

// CountryNamer resolves an ISO alpha-2 country code to a display name.
// The pipeline falls back to the code itself when a lookup misses.
type CountryNamer interface {
	CountryName(code string) (string, bool)
}

type isoCountryNamer struct{}

// NewISOCountryNamer returns a CountryNamer backed by the ISO 3166 table.
func NewISOCountryNamer() CountryNamer {
	return isoCountryNamer{}
}

func (isoCountryNamer) CountryName(code string) (string, bool) {
	c := countries.ByName(strings.TrimSpace(code))
	if c == countries.Unknown {
		return "", false
	}
	return c.String(), true
}
