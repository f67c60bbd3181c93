package declscan

// DefaultSuffix is the identifier suffix that marks a schema declaration.
const DefaultSuffix = "Schema"

// DefaultEntryNames returns the identifiers tried first when selecting the
// entry-point declaration.
func DefaultEntryNames() []string {
	return []string{"Schema", "slideSchema", "SlideSchema"}
}

type config struct {
	suffix     string
	entryNames []string
}

func newConfig(opts []Option) config {
	cfg := config{
		suffix:     DefaultSuffix,
		entryNames: DefaultEntryNames(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option adjusts how declarations are recognized and selected.
type Option func(*config)

// WithSuffix replaces the identifier suffix that marks a declaration.
func WithSuffix(suffix string) Option {
	return func(cfg *config) {
		if suffix != "" {
			cfg.suffix = suffix
		}
	}
}

// WithEntryNames replaces the identifiers tried first when selecting the
// entry-point declaration.
func WithEntryNames(names ...string) Option {
	return func(cfg *config) {
		if len(names) > 0 {
			cfg.entryNames = names
		}
	}
}
