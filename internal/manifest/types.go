package manifest

import "encoding/json"

// DefaultLocale keys every LocalizedText produced when no locale is set.
const DefaultLocale = "en"

// Setting type identifiers understood by the driver manifest.
const (
	TypeCheckbox = "checkbox"
	TypeDropdown = "dropdown"
	TypeNumber   = "number"
)

// LocalizedText maps a locale to a translated string.
type LocalizedText map[string]string

// Kind is the UI representation inferred for a setting. It is a closed set:
// Boolean, Enumerated, or Numeric.
type Kind interface {
	// Type returns the manifest setting type (checkbox, dropdown, number).
	Type() string
	kind()
}

// Boolean renders as a checkbox.
type Boolean struct {
	Value bool
}

// Enumerated renders as a dropdown with one choice per value range.
type Enumerated struct {
	Value   string
	Choices []Choice
}

// Choice is one dropdown entry. Label is nil when the range had no
// description.
type Choice struct {
	ID    string
	Label LocalizedText
}

// Numeric renders as a bounded number input. Nil pointers mean "not
// specified"; Signed is only ever set to false.
type Numeric struct {
	Value  *int64
	Min    *int64
	Max    *int64
	Signed *bool
}

func (Boolean) Type() string    { return TypeCheckbox }
func (Enumerated) Type() string { return TypeDropdown }
func (Numeric) Type() string    { return TypeNumber }

func (Boolean) kind()    {}
func (Enumerated) kind() {}
func (Numeric) kind()    {}

// Protocol is passed through untouched for the device protocol layer.
type Protocol struct {
	Index int64  `json:"index"`
	Size  *int64 `json:"size,omitempty"`
}

// Setting is one entry of the driver's settings list.
type Setting struct {
	ID    string
	Label LocalizedText
	Hint  LocalizedText
	Kind  Kind
	ZWave Protocol
}

type settingJSON struct {
	ID     string        `json:"id"`
	Type   string        `json:"type"`
	Label  LocalizedText `json:"label"`
	Hint   LocalizedText `json:"hint"`
	Value  any           `json:"value,omitempty"`
	Values []choiceJSON  `json:"values,omitempty"`
	Attr   *attrJSON     `json:"attr,omitempty"`
	Signed *bool         `json:"signed,omitempty"`
	ZWave  Protocol      `json:"zwave"`
}

type choiceJSON struct {
	ID    string        `json:"id"`
	Label LocalizedText `json:"label,omitempty"`
}

type attrJSON struct {
	Min *int64 `json:"min,omitempty"`
	Max *int64 `json:"max,omitempty"`
}

// MarshalJSON flattens the setting into the driver manifest layout.
func (s Setting) MarshalJSON() ([]byte, error) {
	out := settingJSON{
		ID:    s.ID,
		Label: s.Label,
		Hint:  s.Hint,
		ZWave: s.ZWave,
	}

	switch kind := s.Kind.(type) {
	case Boolean:
		out.Type = kind.Type()
		out.Value = kind.Value
	case Enumerated:
		out.Type = kind.Type()
		out.Value = kind.Value
		out.Values = make([]choiceJSON, 0, len(kind.Choices))
		for _, choice := range kind.Choices {
			out.Values = append(out.Values, choiceJSON(choice))
		}
	case Numeric:
		out.Type = kind.Type()
		if kind.Value != nil {
			out.Value = *kind.Value
		}
		out.Attr = &attrJSON{Min: kind.Min, Max: kind.Max}
		out.Signed = kind.Signed
	}

	return json.Marshal(out)
}

// Instruction wraps inclusion or exclusion guidance.
type Instruction struct {
	Instruction LocalizedText `json:"instruction"`
}

// GroupOptions carries per-association-group hints.
type GroupOptions struct {
	Hint LocalizedText `json:"hint"`
}

// Fragment is the zwave section of a driver manifest plus the settings that
// belong in the top-level settings list.
type Fragment struct {
	ManufacturerID           *int64                  `json:"manufacturerId,omitempty"`
	ProductTypeID            []int64                 `json:"productTypeId,omitempty"`
	ProductID                []int64                 `json:"productId,omitempty"`
	RegistryProductID        *int64                  `json:"zwaveAllianceProductId,omitempty"`
	Documentation            string                  `json:"zwaveAllianceProductDocumentation,omitempty"`
	LearnMode                *Instruction            `json:"learnmode,omitempty"`
	UnlearnMode              *Instruction            `json:"unlearnmode,omitempty"`
	AssociationGroups        []int64                 `json:"associationGroups,omitempty"`
	AssociationGroupsOptions map[string]GroupOptions `json:"associationGroupsOptions,omitempty"`
	Settings                 []Setting               `json:"-"`
}
