package manifest

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-zwavegen/pkg/registry"
)

// unsignedWindow holds the exclusive bounds a maximum must fall between for a
// parameter of the given byte size to be treated as unsigned. The upper
// bound is exclusive as well, so the largest unsigned value itself does not
// qualify.
type unsignedWindow struct {
	low, high int64
}

var unsignedWindows = map[int64]unsignedWindow{
	1: {low: 127, high: 255},
	2: {low: 32767, high: 65535},
	4: {low: 2147483647, high: 4294967295},
}

// inferSetting classifies one configuration parameter. The returned error is
// always ErrMalformedParameter and means "skip this parameter".
func (b *Builder) inferSetting(param *registry.ConfigurationParameter) (Setting, error) {
	if param == nil {
		return Setting{}, fmt.Errorf("%w: entry is not an object", ErrMalformedParameter)
	}

	number, ok := param.ParameterNumber.Int()
	if !ok {
		return Setting{}, fmt.Errorf("%w: parameter number %q is not an integer", ErrMalformedParameter, param.ParameterNumber.Text())
	}

	kind, err := b.classify(param)
	if err != nil {
		return Setting{}, fmt.Errorf("parameter %d: %w", number, err)
	}

	setting := Setting{
		ID:    strconv.FormatInt(number, 10),
		Label: b.text(param.Name.Text()),
		Hint:  b.text(param.Description.Text()),
		Kind:  kind,
		ZWave: Protocol{Index: number},
	}
	if size, ok := param.Size.Int(); ok {
		setting.ZWave.Size = &size
	}
	return setting, nil
}

// classify looks only at the shape of the value ranges; descriptions never
// influence the kind.
func (b *Builder) classify(param *registry.ConfigurationParameter) (Kind, error) {
	ranges := param.Values

	if isBooleanShape(ranges) {
		n, ok := param.DefaultValue.Int()
		return Boolean{Value: !ok || n != 0}, nil
	}

	if len(ranges) >= 3 {
		choices := make([]Choice, 0, len(ranges))
		for _, rng := range ranges {
			choices = append(choices, b.choice(rng))
		}
		return Enumerated{Value: param.DefaultValue.Text(), Choices: choices}, nil
	}

	return numericKind(param)
}

func isBooleanShape(ranges registry.List[registry.ValueRange]) bool {
	if len(ranges) != 2 || ranges[0] == nil {
		return false
	}
	return isBit(ranges[0].From) && isBit(ranges[0].To)
}

func isBit(v registry.Value) bool {
	n, ok := v.Int()
	return ok && (n == 0 || n == 1)
}

func (b *Builder) choice(rng *registry.ValueRange) Choice {
	if rng == nil {
		return Choice{}
	}
	id := rng.From.Text()
	if id == "" {
		id = rng.To.Text()
	}
	choice := Choice{ID: id}
	if !rng.Description.IsNull() {
		choice.Label = b.text(rng.Description.Text())
	}
	return choice
}

func numericKind(param *registry.ConfigurationParameter) (Kind, error) {
	var kind Numeric
	if n, ok := param.DefaultValue.Int(); ok {
		kind.Value = &n
	}

	if len(param.Values) == 0 {
		return kind, nil
	}
	first := param.Values[0]
	if first == nil {
		return nil, fmt.Errorf("%w: first value range is not an object", ErrMalformedParameter)
	}

	lower, upper := first.BoundsPresent()
	if lower {
		if n, ok := first.From.Int(); ok {
			kind.Min = &n
		}
	}
	if upper {
		if n, ok := first.To.Int(); ok {
			kind.Max = &n
		}
	}

	if size, ok := param.Size.Int(); ok && kind.Max != nil && isUnsigned(size, *kind.Max) {
		signed := false
		kind.Signed = &signed
	}
	return kind, nil
}

func isUnsigned(size, max int64) bool {
	window, ok := unsignedWindows[size]
	if !ok {
		return false
	}
	return max > window.low && max < window.high
}
