package pdfsource

import "github.com/tsawler/pdfsource/internal/filters"

// RangeOptions holds the configuration of a Range.
type RangeOptions struct {
	// Byte range
	pos       int64
	length    int64 // -1 means to the end of the origin
	chunkSize int   // 0 means source.DefaultChunkSize

	// Decode filters, applied in order
	filters []filterStep
}

// filterStep is one named filter with its decode parameters.
type filterStep struct {
	name   string
	params filters.Params
}

// defaultOptions returns options selecting the whole origin, undecoded.
func defaultOptions() RangeOptions {
	return RangeOptions{
		pos:       0,
		length:    -1,
		chunkSize: 0,
		filters:   nil,
	}
}

// clone creates a deep copy of RangeOptions.
func (o RangeOptions) clone() RangeOptions {
	newOpts := RangeOptions{
		pos:       o.pos,
		length:    o.length,
		chunkSize: o.chunkSize,
	}

	// Deep copy filter steps, including their params
	if o.filters != nil {
		newOpts.filters = make([]filterStep, len(o.filters))
		for i, step := range o.filters {
			newOpts.filters[i] = filterStep{name: step.name}
			if step.params != nil {
				newOpts.filters[i].params = make(filters.Params, len(step.params))
				for k, v := range step.params {
					newOpts.filters[i].params[k] = v
				}
			}
		}
	}

	return newOpts
}

// names returns the filter names in application order.
func (o RangeOptions) names() []string {
	names := make([]string, len(o.filters))
	for i, step := range o.filters {
		names[i] = step.name
	}
	return names
}

// params returns the decode parameters aligned with names.
func (o RangeOptions) params() []filters.Params {
	params := make([]filters.Params, len(o.filters))
	for i, step := range o.filters {
		params[i] = step.params
	}
	return params
}
