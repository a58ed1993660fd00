// Package language provides the static country/language catalog and the
// two-level picker state used to choose the word language.
package language

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/catalog.toml
var embeddedCatalog embed.FS

var validate = validator.New(validator.WithRequiredStructEnabled())

// Language is one selectable language.
type Language struct {
	Code string `toml:"code" validate:"required"`
	Name string `toml:"name" validate:"required"`
	Flag string `toml:"flag"` // country code used for the flag glyph
}

// Country groups the languages offered for one country.
type Country struct {
	Code      string     `toml:"code" validate:"required"`
	Name      string     `toml:"name" validate:"required"`
	Languages []Language `toml:"languages" validate:"min=1,dive"`
}

// HasLanguage reports whether code is one of the country's languages.
func (c Country) HasLanguage(code string) bool {
	return slices.ContainsFunc(c.Languages, func(l Language) bool { return l.Code == code })
}

func (c Country) clone() Country {
	c.Languages = slices.Clone(c.Languages)
	return c
}

// Catalog is a read-only, ordered list of countries. It is safe for concurrent use.
type Catalog struct {
	countries []Country
}

type catalogFile struct {
	Countries []Country `toml:"countries"`
}

// NewCatalog validates countries and returns a catalog preserving their order.
func NewCatalog(countries []Country) (*Catalog, error) {
	if len(countries) == 0 {
		return nil, errors.New("catalog has no countries")
	}

	countrySeen := make(map[string]bool, len(countries))
	langSeen := make(map[string]string)
	for i, c := range countries {
		if err := validate.Struct(c); err != nil {
			return nil, fmt.Errorf("country %d (%q): %w", i, c.Code, err)
		}
		if countrySeen[c.Code] {
			return nil, fmt.Errorf("duplicate country code %q", c.Code)
		}
		countrySeen[c.Code] = true
		for _, l := range c.Languages {
			if owner, ok := langSeen[l.Code]; ok {
				return nil, fmt.Errorf("language %q listed under both %q and %q", l.Code, owner, c.Code)
			}
			langSeen[l.Code] = c.Code
		}
	}

	cat := &Catalog{countries: make([]Country, len(countries))}
	for i, c := range countries {
		cat.countries[i] = c.clone()
	}
	return cat, nil
}

// Parse decodes a TOML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return NewCatalog(f.Countries)
}

// Load reads a catalog file. An empty path returns the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return defaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded catalog. It panics if the embedded data is invalid.
func Default() *Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

func defaultCatalog() (*Catalog, error) {
	data, err := embeddedCatalog.ReadFile("embedded/catalog.toml")
	if err != nil {
		return nil, fmt.Errorf("loading embedded catalog: %w", err)
	}
	return Parse(data)
}

// Countries returns the countries in catalog order.
func (c *Catalog) Countries() []Country {
	out := make([]Country, len(c.countries))
	for i, country := range c.countries {
		out[i] = country.clone()
	}
	return out
}

// Len returns the number of countries.
func (c *Catalog) Len() int {
	return len(c.countries)
}

// Country looks up a country by code.
func (c *Catalog) Country(code string) (Country, bool) {
	for _, country := range c.countries {
		if country.Code == code {
			return country.clone(), true
		}
	}
	return Country{}, false
}

// LanguagesOf returns the languages of a country, or nil if it is unknown.
func (c *Catalog) LanguagesOf(countryCode string) []Language {
	country, ok := c.Country(countryCode)
	if !ok {
		return nil
	}
	return country.Languages
}

// CountryOf returns the first country, in catalog order, that offers the language.
func (c *Catalog) CountryOf(languageCode string) (Country, bool) {
	for _, country := range c.countries {
		if country.HasLanguage(languageCode) {
			return country.clone(), true
		}
	}
	return Country{}, false
}

// Language looks up a language by code.
func (c *Catalog) Language(code string) (Language, bool) {
	for _, country := range c.countries {
		for _, l := range country.Languages {
			if l.Code == code {
				return l, true
			}
		}
	}
	return Language{}, false
}

// Contains reports whether the language code is in the catalog.
func (c *Catalog) Contains(code string) bool {
	_, ok := c.Language(code)
	return ok
}

// DisplayName upper-cases the first letter of a language code ("tamil" -> "Tamil").
func DisplayName(code string) string {
	if code == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(code)
	return string(unicode.ToUpper(r)) + code[size:]
}

// Flag renders a two-letter country code as a regional-indicator flag.
// Codes that are not two ASCII letters are returned upper-cased.
func Flag(countryCode string) string {
	code := strings.ToUpper(countryCode)
	if len(code) != 2 || code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
		return code
	}
	const base = 0x1F1E6
	return string([]rune{rune(base + int(code[0]-'A')), rune(base + int(code[1]-'A'))})
}
