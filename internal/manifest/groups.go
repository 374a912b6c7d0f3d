package manifest

import "github.com/goliatone/go-zwavegen/pkg/registry"

// extractGroups parses association group numbers in source order. Groups
// whose number does not parse are dropped; hints are keyed by the raw group
// token as published, not by the parsed number.
func (b *Builder) extractGroups(groups registry.List[registry.AssociationGroup]) ([]int64, map[string]GroupOptions) {
	var (
		numbers []int64
		options map[string]GroupOptions
	)

	for _, group := range groups {
		if group == nil {
			continue
		}
		number, ok := group.GroupNumber.IntBase(b.opts.GroupNumberBase)
		if !ok {
			continue
		}
		numbers = append(numbers, number)

		hint := b.localize(group.Description.Text())
		if hint == nil {
			continue
		}
		if options == nil {
			options = make(map[string]GroupOptions)
		}
		options[group.GroupNumber.Text()] = GroupOptions{Hint: hint}
	}

	return numbers, options
}
