package manifest

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/manifest and passed into New.
type Options struct {
	// Locale keys every LocalizedText. Defaults to DefaultLocale.
	Locale string

	// GroupNumberBase is the base used to parse association group numbers.
	// Defaults to 10.
	GroupNumberBase int

	// Sanitizer, when set, rewrites free text (labels, hints, instructions)
	// before it is localized. Identifiers are never sanitized.
	Sanitizer func(string) string
}

func defaultOptions() Options {
	return Options{
		Locale:          DefaultLocale,
		GroupNumberBase: 10,
	}
}
