package timezones

import (
	"fmt"

	"github.com/goliatone/go-formwidgets/pkg/inputs"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

// Cell builds a SelectListInput cell offering the zone list, ready to drop
// into a row document grid. The embedded list is used unless WithZones
// substitutes one.
func Cell(id, title string, fns ...OptionFn) (widget.Cell, error) {
	opts := NewOptions(fns...)

	zones := opts.Zones
	if zones == nil {
		loaded, err := DefaultZones()
		if err != nil {
			return widget.Cell{}, fmt.Errorf("timezones: load zones: %w", err)
		}
		zones = loaded
	}
	if len(zones) == 0 {
		return widget.Cell{}, fmt.Errorf("timezones: no zones to offer")
	}
	if opts.Limit > 0 && len(zones) > opts.Limit {
		zones = zones[:opts.Limit]
	}

	props := map[string]any{"options": zones}
	if opts.Default != "" {
		props["default"] = opts.Default
	}

	return widget.Cell{
		ID:    id,
		Title: title,
		Type:  inputs.TypeSelectList,
		Props: props,
	}, nil
}
