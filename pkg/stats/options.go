package stats

import "math"

// ZScoreOption configures ZScoreMetrics and ZScoreFilter.
type ZScoreOption func(*zscoreOptions)

type zscoreOptions struct {
	idColumn  string
	indexByID bool
	fallback  float64
	bound     float64
	column    string
}

func newZScoreOptions(opts []ZScoreOption) zscoreOptions {
	o := zscoreOptions{fallback: math.NaN(), bound: 3}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithIDColumn excludes an identifier column from scoring. When index is true
// the result is keyed by it, otherwise it is kept as the first data column.
func WithIDColumn(name string, index bool) ZScoreOption {
	return func(o *zscoreOptions) {
		o.idColumn = name
		o.indexByID = index
	}
}

// WithZeroStdFallback sets the value written to every row of a column whose
// standard deviation is exactly zero. Defaults to NaN.
func WithZeroStdFallback(v float64) ZScoreOption {
	return func(o *zscoreOptions) { o.fallback = v }
}

// WithBound sets the absolute z-score at which ZScoreFilter replaces a value.
// Defaults to 3.
func WithBound(b float64) ZScoreOption {
	return func(o *zscoreOptions) { o.bound = b }
}

// WithColumn restricts the ZScoreFilter result to one column.
func WithColumn(name string) ZScoreOption {
	return func(o *zscoreOptions) { o.column = name }
}

// IQROption configures IQRFlag.
type IQROption func(*iqrOptions)

type iqrOptions struct {
	excluded []string
	invert   bool
	filter   bool
}

// WithExcluded skips the named numeric columns.
func WithExcluded(names ...string) IQROption {
	return func(o *iqrOptions) { o.excluded = append(o.excluded, names...) }
}

// WithInvert flags values inside the bounds instead of outside.
func WithInvert() IQROption {
	return func(o *iqrOptions) { o.invert = true }
}

// WithFilter removes flagged rows instead of appending flag columns.
func WithFilter() IQROption {
	return func(o *iqrOptions) { o.filter = true }
}
