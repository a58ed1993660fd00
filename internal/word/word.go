// Package word defines the word-of-the-day record served by the words API.
package word

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRecord is returned when a record does not satisfy the schema.
var ErrInvalidRecord = errors.New("invalid word record")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Record is a single word of the day. Records are replaced wholesale, never mutated.
type Record struct {
	Word               string   `json:"word" validate:"required"`
	Language           string   `json:"language" validate:"required"`
	Meanings           []string `json:"meanings" validate:"min=1,dive,required"`
	EnglishTranslation string   `json:"englishTranslation"`
	Remarks            []string `json:"remarks"`
	Phonetics          string   `json:"phonetics"`
}

// Fallback returns the record shown when the very first fetch fails.
func Fallback() Record {
	return Record{
		Word:               "Eucatastrophe",
		Language:           "english",
		Meanings:           []string{"A sudden turn towards good"},
		EnglishTranslation: "yoo-kuh-tass-truh-fee",
		Remarks:            []string{"A 'good catastrophe' in a story"},
		Phonetics:          "abcd",
	}
}

// Validate checks the record against the schema. Meanings must be non-empty.
func (r Record) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return nil
}

// Clone returns a deep copy so callers can't alias the slices.
func (r Record) Clone() Record {
	c := r
	c.Meanings = slices.Clone(r.Meanings)
	c.Remarks = slices.Clone(r.Remarks)
	if c.Remarks == nil {
		c.Remarks = []string{}
	}
	return c
}

// Equal reports whether two records carry the same content.
func (r Record) Equal(other Record) bool {
	return r.Word == other.Word &&
		r.Language == other.Language &&
		r.EnglishTranslation == other.EnglishTranslation &&
		r.Phonetics == other.Phonetics &&
		slices.Equal(r.Meanings, other.Meanings) &&
		slices.Equal(r.Remarks, other.Remarks)
}

// HasPhonetics reports whether a pronunciation line should be shown.
func (r Record) HasPhonetics() bool {
	return r.Phonetics != ""
}
