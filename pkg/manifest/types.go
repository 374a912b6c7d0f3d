package manifest

import internalmanifest "github.com/goliatone/go-zwavegen/internal/manifest"

// DefaultLocale re-exports the locale used when none is configured.
const DefaultLocale = internalmanifest.DefaultLocale

const (
	TypeCheckbox = internalmanifest.TypeCheckbox
	TypeDropdown = internalmanifest.TypeDropdown
	TypeNumber   = internalmanifest.TypeNumber
)

type LocalizedText = internalmanifest.LocalizedText
type Kind = internalmanifest.Kind
type Boolean = internalmanifest.Boolean
type Enumerated = internalmanifest.Enumerated
type Choice = internalmanifest.Choice
type Numeric = internalmanifest.Numeric
type Protocol = internalmanifest.Protocol
type Setting = internalmanifest.Setting
type Instruction = internalmanifest.Instruction
type GroupOptions = internalmanifest.GroupOptions
type Fragment = internalmanifest.Fragment
type Report = internalmanifest.Report
type SkippedParameter = internalmanifest.SkippedParameter

// ErrMalformedParameter marks parameters skipped during a build.
var ErrMalformedParameter = internalmanifest.ErrMalformedParameter
