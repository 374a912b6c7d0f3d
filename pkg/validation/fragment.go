// Package validation lints generated manifest fragments. Issues are advisory:
// the fragment is still written, but callers surface them so odd registry
// data gets a second look.
package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/goliatone/go-zwavegen/pkg/manifest"
)

// ErrRegistryIDFormat is returned by RegistryID for answers with inner
// whitespace.
var ErrRegistryIDFormat = errors.New("validation: registry id must be a single token")

// Issue represents one finding with its location in the driver manifest.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures lint outcomes for a fragment.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

func (r *Result) add(pointer, format string, args ...any) {
	r.Valid = false
	r.Issues = append(r.Issues, Issue{
		Path:    pointer,
		Field:   fieldPathFromPointer(pointer),
		Message: fmt.Sprintf(format, args...),
	})
}

// RegistryID accepts an empty answer (the user skips the lookup) or any
// single token; the registry decides whether the token names a product.
// It is shaped for prompt.InputConfig.Validator.
func RegistryID(answer string) error {
	if strings.ContainsFunc(strings.TrimSpace(answer), unicode.IsSpace) {
		return ErrRegistryIDFormat
	}
	return nil
}

// ValidateFragment checks settings and association groups for values the
// driver runtime would reject or silently ignore.
func ValidateFragment(fragment manifest.Fragment) Result {
	result := Result{Valid: true}

	seen := make(map[string]int, len(fragment.Settings))
	for idx, setting := range fragment.Settings {
		base := "#/settings/" + strconv.Itoa(idx)
		if prev, ok := seen[setting.ID]; ok {
			result.add(base+"/id", "duplicate setting id %q (first at index %d)", setting.ID, prev)
		} else {
			seen[setting.ID] = idx
		}
		if size := setting.ZWave.Size; size != nil && *size != 1 && *size != 2 && *size != 4 {
			result.add(base+"/zwave/size", "parameter size %d is not 1, 2 or 4", *size)
		}
		validateKind(&result, base, setting.Kind)
	}

	groups := make(map[int64]struct{}, len(fragment.AssociationGroups))
	for idx, group := range fragment.AssociationGroups {
		pointer := "#/zwave/associationGroups/" + strconv.Itoa(idx)
		if group <= 0 {
			result.add(pointer, "association group %d is not positive", group)
		}
		if _, ok := groups[group]; ok {
			result.add(pointer, "duplicate association group %d", group)
		}
		groups[group] = struct{}{}
	}

	return result
}

func validateKind(result *Result, base string, kind manifest.Kind) {
	switch k := kind.(type) {
	case manifest.Enumerated:
		if len(k.Choices) == 0 {
			result.add(base+"/values", "dropdown has no choices")
			return
		}
		if k.Value == "" {
			return
		}
		for _, choice := range k.Choices {
			if choice.ID == k.Value {
				return
			}
		}
		result.add(base+"/value", "default %q is not one of the choices", k.Value)
	case manifest.Numeric:
		if k.Min != nil && k.Max != nil && *k.Min > *k.Max {
			result.add(base+"/attr", "min %d exceeds max %d", *k.Min, *k.Max)
		}
		if k.Value == nil {
			return
		}
		if k.Min != nil && *k.Value < *k.Min {
			result.add(base+"/value", "default %d is below min %d", *k.Value, *k.Min)
		}
		if k.Max != nil && *k.Value > *k.Max {
			result.add(base+"/value", "default %d is above max %d", *k.Value, *k.Max)
		}
	}
}

func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	for idx, segment := range parts {
		segment = strings.ReplaceAll(segment, "~1", "/")
		parts[idx] = strings.ReplaceAll(segment, "~0", "~")
	}
	return strings.Join(parts, ".")
}
