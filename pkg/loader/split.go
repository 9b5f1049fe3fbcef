package loader

import (
	"crypto/md5"
	"fmt"
	"math/big"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
)

// hashModulus bounds the hash to eight decimal digits before normalising.
var hashModulus = big.NewInt(100_000_000)

// HashValue maps an identifier to [0, 1): the MD5 digest of its text form,
// read as a big-endian integer, reduced modulo 10^8 and divided by 10^8.
// The result depends on the identifier alone.
func HashValue(id string) float64 {
	sum := md5.Sum([]byte(id))
	n := new(big.Int).SetBytes(sum[:])
	n.Mod(n, hashModulus)
	return float64(n.Int64()) / 1e8
}

// SplitOption configures Split.
type SplitOption func(*splitOptions)

type splitOptions struct {
	testFraction float64
	indexByID    bool
}

// WithTestFraction sets the expected share of rows in the test set. Defaults to 0.2.
func WithTestFraction(f float64) SplitOption {
	return func(o *splitOptions) { o.testFraction = f }
}

// WithIndexByID chooses whether the identifier becomes the row key of both
// results (the default) or stays a data column.
func WithIndexByID(index bool) SplitOption {
	return func(o *splitOptions) { o.indexByID = index }
}

// Split partitions rows into train and test sets by hashing the identifier
// column. A row is in the test set iff HashValue(id) < test fraction, so a
// row's side never changes when rows are added, removed or reordered.
func Split(t *core.Table, idColumn string, opts ...SplitOption) (train, test *core.Table, err error) {
	o := splitOptions{testFraction: 0.2, indexByID: true}
	for _, opt := range opts {
		opt(&o)
	}
	if !(o.testFraction >= 0 && o.testFraction <= 1) {
		return nil, nil, fmt.Errorf("%w: test fraction must be within [0, 1], got %v", core.ErrRange, o.testFraction)
	}
	id, err := t.Column(idColumn)
	if err != nil {
		return nil, nil, err
	}

	src := t
	if o.indexByID {
		if src, err = t.SetIndex(idColumn); err != nil {
			return nil, nil, err
		}
	}

	inTest := make([]bool, id.Len())
	inTrain := make([]bool, id.Len())
	for i := range inTest {
		inTest[i] = HashValue(IDString(id, i)) < o.testFraction
		inTrain[i] = !inTest[i]
	}
	if train, err = src.Filter(inTrain); err != nil {
		return nil, nil, err
	}
	if test, err = src.Filter(inTest); err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

// IDString is the text form of row i of an identifier column that HashValue
// consumes. Missing identifiers hash as "nan".
func IDString(c *core.Column, i int) string {
	if c.IsMissing(i) {
		return "nan"
	}
	return c.Format(i)
}
