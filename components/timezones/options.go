package timezones

// Options configures zone cells and search behavior.
type Options struct {
	// Zones overrides the embedded list.
	Zones []string
	// Default preselects a zone in built cells.
	Default string
	// Limit caps how many zones a cell offers. Zero keeps them all.
	Limit int
}

type OptionFn func(*Options)

// NewOptions folds overrides into a fresh Options value.
func NewOptions(fns ...OptionFn) Options {
	opts := Options{}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Zones != nil {
		opts.Zones = append([]string{}, opts.Zones...)
	}
	if opts.Limit < 0 {
		opts.Limit = 0
	}
	return opts
}

// WithZones substitutes the zone list.
func WithZones(zones []string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if zones == nil {
			o.Zones = nil
			return
		}
		o.Zones = append([]string{}, zones...)
	}
}

// WithDefault preselects a zone.
func WithDefault(zone string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Default = zone
	}
}

// WithLimit caps the number of offered zones.
func WithLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Limit = limit
	}
}
