package domain

import "golang.org/x/text/unicode/norm"

const (
	defaultFilterLimit = 100
	maxFilterLimit     = 1000
)

// CharacterFilter contains filtering/pagination parameters for stored
// character lookups. Nil fields do not filter.
type CharacterFilter struct {
	Radical *int
	Tone    *int
	// Pinyin matches the toneless segmental form, which is stored in NFD.
	Pinyin *string
	Limit  int
	Offset int
}

// Normalize applies defaults, clamps the pagination values and decomposes
// Pinyin so precomposed input such as "lü" matches stored rows.
func (f *CharacterFilter) Normalize() {
	if f.Pinyin != nil {
		p := norm.NFD.String(*f.Pinyin)
		f.Pinyin = &p
	}
	if f.Limit <= 0 {
		f.Limit = defaultFilterLimit
	}
	if f.Limit > maxFilterLimit {
		f.Limit = maxFilterLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// Validate checks the filter values against the domain ranges.
func (f CharacterFilter) Validate() error {
	var errs []FieldError
	if f.Radical != nil && (*f.Radical < MinRadical || *f.Radical > MaxRadical) {
		errs = append(errs, FieldError{Field: "radical", Message: "must be between 1 and 214"})
	}
	if f.Tone != nil && (*f.Tone < MinTone || *f.Tone > MaxTone) {
		errs = append(errs, FieldError{Field: "tone", Message: "must be between 1 and 5"})
	}
	if f.Pinyin != nil && *f.Pinyin == "" {
		errs = append(errs, FieldError{Field: "pinyin", Message: "must not be empty"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
