package core_test

import (
	"errors"
	"testing"

	"github.com/dHumanities/immarkus/pkg/core"
)

func floatPtr(f float64) *float64 { return &f }

func TestPropertyDefinition_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		definition core.PropertyDefinition
		value      any
		wantReason string // empty means valid
	}{
		{
			name:       "text optional empty",
			definition: core.PropertyDefinition{Type: core.PropertyText, Name: "Caption"},
			value:      nil,
		},
		{
			name:       "text required empty",
			definition: core.PropertyDefinition{Type: core.PropertyText, Name: "Caption", Required: true},
			value:      "",
			wantReason: core.ReasonRequired,
		},
		{
			name:       "text required whitespace only",
			definition: core.PropertyDefinition{Type: core.PropertyText, Name: "Caption", Required: true},
			value:      "   ",
			wantReason: core.ReasonRequired,
		},
		{
			name:       "text required present",
			definition: core.PropertyDefinition{Type: core.PropertyText, Name: "Caption", Required: true},
			value:      "a caption",
		},
		{
			name:       "number from numeric string",
			definition: core.PropertyDefinition{Type: core.PropertyNumber, Name: "Age"},
			value:      "34",
		},
		{
			name:       "number garbage",
			definition: core.PropertyDefinition{Type: core.PropertyNumber, Name: "Age"},
			value:      "thirty-four",
			wantReason: core.ReasonNotNumber,
		},
		{
			name: "number below min",
			definition: core.PropertyDefinition{
				Type: core.PropertyNumber, Name: "Age", Min: floatPtr(0),
			},
			value:      -1,
			wantReason: core.ReasonOutOfRange,
		},
		{
			name: "number above max",
			definition: core.PropertyDefinition{
				Type: core.PropertyNumber, Name: "Age", Max: floatPtr(120),
			},
			value:      "130",
			wantReason: core.ReasonOutOfRange,
		},
		{
			name: "number within range",
			definition: core.PropertyDefinition{
				Type: core.PropertyNumber, Name: "Age", Min: floatPtr(0), Max: floatPtr(120),
			},
			value: 34.0,
		},
		{
			name: "enum member",
			definition: core.PropertyDefinition{
				Type: core.PropertyEnum, Name: "Dynasty", Values: []string{"Ming", "Qing"},
			},
			value: "Ming",
		},
		{
			name: "enum non-member",
			definition: core.PropertyDefinition{
				Type: core.PropertyEnum, Name: "Dynasty", Values: []string{"Ming", "Qing"},
			},
			value:      "Han",
			wantReason: core.ReasonNotAllowed,
		},
		{
			name: "enum optional empty",
			definition: core.PropertyDefinition{
				Type: core.PropertyEnum, Name: "Dynasty", Values: []string{"Ming"},
			},
			value: nil,
		},
		{
			name:       "uri https",
			definition: core.PropertyDefinition{Type: core.PropertyURI, Name: "Link"},
			value:      "https://example.org/page",
		},
		{
			name:       "uri http",
			definition: core.PropertyDefinition{Type: core.PropertyURI, Name: "Link"},
			value:      "http://example.org",
		},
		{
			name:       "uri relative",
			definition: core.PropertyDefinition{Type: core.PropertyURI, Name: "Link"},
			value:      "example.org/page",
			wantReason: core.ReasonNotURI,
		},
		{
			name:       "uri wrong scheme",
			definition: core.PropertyDefinition{Type: core.PropertyURI, Name: "Link"},
			value:      "ftp://example.org",
			wantReason: core.ReasonNotURI,
		},
		{
			name:       "uri required missing",
			definition: core.PropertyDefinition{Type: core.PropertyURI, Name: "Link", Required: true},
			value:      nil,
			wantReason: core.ReasonRequired,
		},
		{
			name:       "geocoordinate struct",
			definition: core.PropertyDefinition{Type: core.PropertyGeoCoordinate, Name: "Place"},
			value:      core.Coordinate{Lat: 48.2, Lng: 16.3},
		},
		{
			name:       "geocoordinate decoded map",
			definition: core.PropertyDefinition{Type: core.PropertyGeoCoordinate, Name: "Place"},
			value:      map[string]any{"lat": 48.2, "lng": 16.3},
		},
		{
			name:       "geocoordinate out of range",
			definition: core.PropertyDefinition{Type: core.PropertyGeoCoordinate, Name: "Place"},
			value:      core.Coordinate{Lat: 91, Lng: 0},
			wantReason: core.ReasonBadCoordinate,
		},
		{
			name:       "geocoordinate malformed",
			definition: core.PropertyDefinition{Type: core.PropertyGeoCoordinate, Name: "Place"},
			value:      "48.2,16.3",
			wantReason: core.ReasonBadCoordinate,
		},
		{
			name: "external authority required present",
			definition: core.PropertyDefinition{
				Type: core.PropertyExternalAuthority, Name: "Wikidata", Required: true,
				Authorities: []core.AuthoritySource{{Name: "Wikidata", URLPattern: "https://www.wikidata.org/wiki/{id}"}},
			},
			value: "Q42",
		},
		{
			name: "external authority required missing",
			definition: core.PropertyDefinition{
				Type: core.PropertyExternalAuthority, Name: "Wikidata", Required: true,
			},
			value:      "",
			wantReason: core.ReasonRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.definition.Validate(tt.value)
			if tt.wantReason == "" {
				if err != nil {
					t.Fatalf("Validate(%v) = %v; want nil", tt.value, err)
				}
				return
			}
			var fieldErr *core.FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("Validate(%v) = %v; want *FieldError", tt.value, err)
			}
			if fieldErr.Reason != tt.wantReason {
				t.Errorf("reason = %q; want %q", fieldErr.Reason, tt.wantReason)
			}
		})
	}
}

func TestPropertyDefinition_Format(t *testing.T) {
	t.Parallel()

	number := core.PropertyDefinition{Type: core.PropertyNumber, Name: "Age"}
	if got := number.Format("34"); got != "34" {
		t.Errorf("Format(\"34\") = %q; want \"34\"", got)
	}
	if got := number.Format(34.5); got != "34.5" {
		t.Errorf("Format(34.5) = %q; want \"34.5\"", got)
	}

	geo := core.PropertyDefinition{Type: core.PropertyGeoCoordinate, Name: "Place"}
	if got := geo.Format(core.Coordinate{Lat: 48.2, Lng: 16.3}); got != "48.2, 16.3" {
		t.Errorf("Format(coordinate) = %q; want \"48.2, 16.3\"", got)
	}

	text := core.PropertyDefinition{Type: core.PropertyText, Name: "Caption"}
	if got := text.Format(nil); got != "" {
		t.Errorf("Format(nil) = %q; want empty", got)
	}
}
