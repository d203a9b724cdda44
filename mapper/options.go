package mapper

import (
	"go.uber.org/zap"

	"github.com/witanlabs/gridmap/grid"
)

// Option adjusts a read or write. Options that only make sense on one side
// are ignored by the other.
type Option func(*options)

type options struct {
	hiddenNames    []string
	hiddenOrdinals []int
	checkHeader    bool
	end            grid.Cell
	table          bool
	logger         *zap.Logger
}

func newOptions(opts []Option) *options {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// HideFields leaves the named fields out of a write.
func HideFields(names ...string) Option {
	return func(o *options) { o.hiddenNames = append(o.hiddenNames, names...) }
}

// Table turns a write into a filterable table: the written region gets an
// autofilter and the rows down to the header stay frozen in view.
func Table() Option {
	return func(o *options) { o.table = true }
}

// ExpectHidden turns on the header check of a read. The fields at the given
// ordinals must be absent from the header row and every other field's label
// must be present. Called with no ordinals, it requires every label.
func ExpectHidden(ordinals ...int) Option {
	return func(o *options) {
		o.checkHeader = true
		o.hiddenOrdinals = append(o.hiddenOrdinals, ordinals...)
	}
}

// Until bounds a read at end instead of the sheet's last data cell. A zero
// Row or Col keeps the sheet's value for that axis.
func Until(end grid.Cell) Option {
	return func(o *options) { o.end = end }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
