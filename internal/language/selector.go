package language

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/javiermolinar/moments/internal/notify"
)

// ErrInvalidSelection is the class of caller errors: the picker was driven with
// input that doesn't match its current state or the catalog.
var ErrInvalidSelection = errors.New("invalid selection")

var (
	ErrUnknownCountry       = fmt.Errorf("%w: unknown country", ErrInvalidSelection)
	ErrUnknownLanguage      = fmt.Errorf("%w: unknown language", ErrInvalidSelection)
	ErrNoPendingCountry     = fmt.Errorf("%w: no country chosen", ErrInvalidSelection)
	ErrLanguageNotInCountry = fmt.Errorf("%w: language not offered by country", ErrInvalidSelection)
	ErrNotChoosingLanguage  = fmt.Errorf("%w: language list is not showing", ErrInvalidSelection)
)

// View is what the picker is currently showing.
type View int

const (
	ViewClosed    View = iota
	ViewCountries      // country list
	ViewLanguages      // languages of the pending country
)

func (v View) String() string {
	switch v {
	case ViewCountries:
		return "countries"
	case ViewLanguages:
		return "languages"
	default:
		return "closed"
	}
}

// LanguageSetter is told about every committed language.
type LanguageSetter interface {
	SetLanguage(code string) error
}

// State is a snapshot of the picker.
type State struct {
	SelectedLanguageCode string
	PendingCountry       *Country
	View                 View
}

// Selector drives the country -> language picker. The selected language code
// is never set to a code missing from the catalog.
//
// Selector is not safe for concurrent use; it is driven from the UI loop.
type Selector struct {
	catalog        *Catalog
	selected       string
	pending        *Country
	view           View
	defaultCountry string

	setter LanguageSetter
	sink   notify.Sink
	logger *zap.Logger
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithSetter registers the component that fetches words for the committed language.
func WithSetter(s LanguageSetter) SelectorOption {
	return func(sel *Selector) { sel.setter = s }
}

// WithSink sets where "Language Changed" notifications go.
func WithSink(s notify.Sink) SelectorOption {
	return func(sel *Selector) { sel.sink = s }
}

// WithDefaultCountry sets the country shown when the selection doesn't resolve.
func WithDefaultCountry(code string) SelectorOption {
	return func(sel *Selector) { sel.defaultCountry = code }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) SelectorOption {
	return func(sel *Selector) {
		if l != nil {
			sel.logger = l
		}
	}
}

// NewSelector creates a closed picker with initial as the selected language.
func NewSelector(catalog *Catalog, initial string, opts ...SelectorOption) *Selector {
	s := &Selector{
		catalog:        catalog,
		selected:       initial,
		view:           ViewClosed,
		defaultCountry: "us",
		sink:           notify.Discard,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open starts an interaction at the country list.
func (s *Selector) Open() {
	s.pending = nil
	s.view = ViewCountries
	s.logger.Debug("picker opened", zap.String("selected", s.selected))
}

// Cancel closes the picker without changing the selection.
func (s *Selector) Cancel() {
	s.pending = nil
	s.view = ViewClosed
}

// ResolveCurrentCountry returns the first country, in catalog order, offering code.
func (s *Selector) ResolveCurrentCountry(code string) (Country, bool) {
	return s.catalog.CountryOf(code)
}

// SelectCountry makes the country pending. A country with a single language is
// committed immediately and the picker closes; otherwise its languages are shown.
func (s *Selector) SelectCountry(countryCode string) error {
	country, ok := s.catalog.Country(countryCode)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCountry, countryCode)
	}

	if len(country.Languages) == 1 {
		return s.commit(country, country.Languages[0].Code)
	}

	s.pending = &country
	s.view = ViewLanguages
	s.logger.Debug("country selected",
		zap.String("country", country.Code),
		zap.Int("languages", len(country.Languages)),
	)
	return nil
}

// CommitLanguage selects a language of the pending country and closes the picker.
func (s *Selector) CommitLanguage(code string) error {
	if s.pending == nil {
		return ErrNoPendingCountry
	}
	return s.commit(*s.pending, code)
}

func (s *Selector) commit(country Country, code string) error {
	if !country.HasLanguage(code) {
		return fmt.Errorf("%w: %q not in %q", ErrLanguageNotInCountry, code, country.Code)
	}
	if !s.catalog.Contains(code) {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	if s.setter != nil {
		if err := s.setter.SetLanguage(code); err != nil {
			return fmt.Errorf("setting language: %w", err)
		}
	}

	s.selected = code
	s.pending = nil
	s.view = ViewClosed
	s.logger.Debug("language committed", zap.String("country", country.Code), zap.String("language", code))

	s.sink.Notify(notify.Notification{
		Title:       "Language Changed",
		Description: "Selected language: " + DisplayName(code),
		Severity:    notify.SeverityDefault,
	})
	return nil
}

// GoBack returns from the language list to the country list.
func (s *Selector) GoBack() error {
	if s.view != ViewLanguages {
		return ErrNotChoosingLanguage
	}
	s.pending = nil
	s.view = ViewCountries
	return nil
}

// Selected returns the selected language code.
func (s *Selector) Selected() string {
	return s.selected
}

// Pending returns the country chosen mid-navigation.
func (s *Selector) Pending() (Country, bool) {
	if s.pending == nil {
		return Country{}, false
	}
	return s.pending.clone(), true
}

// View returns what the picker is showing.
func (s *Selector) View() View {
	return s.view
}

// IsOpen reports whether an interaction is in progress.
func (s *Selector) IsOpen() bool {
	return s.view != ViewClosed
}

// Countries returns the catalog countries for the country list.
func (s *Selector) Countries() []Country {
	return s.catalog.Countries()
}

// Options returns the languages of the pending country.
func (s *Selector) Options() []Language {
	if s.pending == nil {
		return nil
	}
	return s.pending.clone().Languages
}

// CurrentCountry is the pending country, else the country of the selected
// language, else the configured default country.
func (s *Selector) CurrentCountry() Country {
	if s.pending != nil {
		return s.pending.clone()
	}
	if c, ok := s.catalog.CountryOf(s.selected); ok {
		return c
	}
	if c, ok := s.catalog.Country(s.defaultCountry); ok {
		return c
	}
	return Country{Code: s.defaultCountry}
}

// State returns a snapshot of the picker.
func (s *Selector) State() State {
	st := State{SelectedLanguageCode: s.selected, View: s.view}
	if s.pending != nil {
		c := s.pending.clone()
		st.PendingCountry = &c
	}
	return st
}
