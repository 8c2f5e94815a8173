package core

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// PropertyType identifies one of the closed set of property kinds.
type PropertyType string

const (
	PropertyText              PropertyType = "text"
	PropertyNumber            PropertyType = "number"
	PropertyEnum              PropertyType = "enum"
	PropertyURI               PropertyType = "uri"
	PropertyGeoCoordinate     PropertyType = "geocoordinate"
	PropertyExternalAuthority PropertyType = "external_authority"
)

// AuthoritySource describes one selectable external authority (e.g. a
// gazetteer or name registry). It is metadata on the definition, not
// part of the stored value.
type AuthoritySource struct {
	Name       string `json:"name"`
	URLPattern string `json:"url_pattern,omitempty"`
}

// PropertyDefinition describes one typed property in an entity schema.
// The Type field discriminates which of the optional constraint fields
// apply. Name doubles as display label and storage key; uniqueness of
// names is enforced per-schema by the vocabulary editor, not here.
type PropertyDefinition struct {
	Type        PropertyType      `json:"type"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Required    bool              `json:"required,omitempty"`
	Values      []string          `json:"values,omitempty"` // enum only
	Min         *float64          `json:"min,omitempty"`    // number only
	Max         *float64          `json:"max,omitempty"`    // number only
	Authorities []AuthoritySource `json:"authorities,omitempty"`
}

// Validation reasons, surfaced verbatim next to the offending field.
const (
	ReasonRequired      = "required"
	ReasonNotURI        = "must be a URI"
	ReasonNotNumber     = "must be a number"
	ReasonOutOfRange    = "out of range"
	ReasonNotAllowed    = "not an allowed value"
	ReasonBadCoordinate = "invalid coordinate"
	ReasonNotApplicable = "not applicable"
)

// Coordinate is the structured value of a geocoordinate property.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the pair is inside WGS84 ranges.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Validate checks a raw value against the definition. It is a pure
// function of (definition, value); a nil return means the value is
// acceptable for submission.
func (d PropertyDefinition) Validate(value any) error {
	if isEmpty(value) {
		if d.Required {
			return &FieldError{Name: d.Name, Reason: ReasonRequired}
		}
		return nil
	}

	switch d.Type {
	case PropertyText, PropertyExternalAuthority:
		// Non-empty is all that is asked of free text; the authority
		// source lives on the definition, not the value.
		return nil

	case PropertyNumber:
		f, ok := asNumber(value)
		if !ok {
			return &FieldError{Name: d.Name, Reason: ReasonNotNumber}
		}
		if (d.Min != nil && f < *d.Min) || (d.Max != nil && f > *d.Max) {
			return &FieldError{Name: d.Name, Reason: ReasonOutOfRange}
		}
		return nil

	case PropertyEnum:
		s := fmt.Sprintf("%v", value)
		for _, allowed := range d.Values {
			if s == allowed {
				return nil
			}
		}
		return &FieldError{Name: d.Name, Reason: ReasonNotAllowed}

	case PropertyURI:
		s, _ := value.(string)
		u, err := url.Parse(s)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
			return &FieldError{Name: d.Name, Reason: ReasonNotURI}
		}
		return nil

	case PropertyGeoCoordinate:
		c, ok := asCoordinate(value)
		if !ok || !c.Valid() {
			return &FieldError{Name: d.Name, Reason: ReasonBadCoordinate}
		}
		return nil
	}

	return nil
}

// Format serializes a value to its canonical display string.
func (d PropertyDefinition) Format(value any) string {
	if isEmpty(value) {
		return ""
	}
	switch d.Type {
	case PropertyNumber:
		if f, ok := asNumber(value); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	case PropertyGeoCoordinate:
		if c, ok := asCoordinate(value); ok {
			return strconv.FormatFloat(c.Lat, 'f', -1, 64) + ", " +
				strconv.FormatFloat(c.Lng, 'f', -1, 64)
		}
	}
	return fmt.Sprintf("%v", value)
}

// isEmpty treats nil and whitespace-only strings as "no value entered".
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// asNumber accepts numeric values and numeric strings, matching what a
// form widget or a JSON decode may hand over.
func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// asCoordinate accepts Coordinate values and the map shape produced by
// decoding the stored JSON ({"lat": ..., "lng": ...}).
func asCoordinate(value any) (Coordinate, bool) {
	switch v := value.(type) {
	case Coordinate:
		return v, true
	case *Coordinate:
		if v == nil {
			return Coordinate{}, false
		}
		return *v, true
	case map[string]any:
		lat, latOK := asNumber(v["lat"])
		lng, lngOK := asNumber(v["lng"])
		if !latOK || !lngOK {
			return Coordinate{}, false
		}
		return Coordinate{Lat: lat, Lng: lng}, true
	}
	return Coordinate{}, false
}
