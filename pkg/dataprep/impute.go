package dataprep

import (
	"fmt"
	"sort"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
)

// MissingValueFiller replaces missing entries column by column with a fixed
// constant. Numeric columns take a number, string columns a string.
type MissingValueFiller struct {
	stateless
	Replacements map[string]any
}

// NewMissingValueFiller creates a filler for the given column -> value mapping.
func NewMissingValueFiller(replacements map[string]any) *MissingValueFiller {
	return &MissingValueFiller{Replacements: replacements}
}

// Transform fills every mapped column. All mapped columns must be present.
func (f *MissingValueFiller) Transform(t *core.Table, _ any) (*core.Table, error) {
	if len(f.Replacements) == 0 {
		return t, nil
	}
	names := make([]string, 0, len(f.Replacements))
	var missing []string
	for name := range f.Replacements {
		names = append(names, name)
		if !t.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: columns not found in input: %v", core.ErrKey, missing)
	}
	sort.Strings(names)

	out := t
	for _, name := range names {
		c, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		filled, err := c.FillMissing(f.Replacements[name])
		if err != nil {
			return nil, err
		}
		if out, err = out.WithColumn(filled); err != nil {
			return nil, err
		}
	}
	return out, nil
}
