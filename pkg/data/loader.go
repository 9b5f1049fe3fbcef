package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
)

// ErrEmpty is returned for input without a header row.
var ErrEmpty = errors.New("csv has no header row")

// IsMissing reports whether a raw CSV token stands for a missing value.
func IsMissing(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "NA", "NaN", "nan", "null":
		return true
	}
	return false
}

// ReadCSVFile opens path and reads it with ReadCSV.
func ReadCSVFile(path string) (*core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads a table with a header row. A column whose non-missing tokens
// all parse as integers, with nothing missing, is Int; one whose tokens all
// parse as numbers is Float; anything else is String.
func ReadCSV(r io.Reader) (*core.Table, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	names := append([]string(nil), header...)
	raw := make([][]string, len(names))

	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		for j := range names {
			raw[j] = append(raw[j], rec[j])
		}
	}

	cols := make([]*core.Column, len(names))
	for j, name := range names {
		c, err := inferColumn(name, raw[j])
		if err != nil {
			return nil, err
		}
		cols[j] = c
	}
	return core.NewTable(cols...)
}

func inferColumn(name string, tokens []string) (*core.Column, error) {
	isFloat, isInt, anyMissing := true, true, false
	for _, tok := range tokens {
		if IsMissing(tok) {
			anyMissing = true
			continue
		}
		tok = strings.TrimSpace(tok)
		if _, err := strconv.ParseInt(tok, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(tok, 64); err != nil {
			isFloat = false
			break
		}
	}

	switch {
	case isFloat && isInt && !anyMissing:
		v := make([]int64, len(tokens))
		for i, tok := range tokens {
			v[i], _ = strconv.ParseInt(strings.TrimSpace(tok), 10, 64)
		}
		return core.NewInt(name, v), nil
	case isFloat:
		v := make([]float64, len(tokens))
		for i, tok := range tokens {
			if IsMissing(tok) {
				v[i] = math.NaN()
				continue
			}
			v[i], _ = strconv.ParseFloat(strings.TrimSpace(tok), 64)
		}
		return core.NewFloat(name, v), nil
	default:
		null := make([]bool, len(tokens))
		for i, tok := range tokens {
			null[i] = IsMissing(tok)
		}
		return core.NewStringNull(name, tokens, null)
	}
}

// WriteCSVFile writes t to path with WriteCSV.
func WriteCSVFile(path string, t *core.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV writes t with a header row, the index column first when present.
// Missing values are written as empty fields.
func WriteCSV(w io.Writer, t *core.Table) error {
	cols := t.Columns()
	if idx := t.Index(); idx != nil {
		cols = append([]*core.Column{idx}, cols...)
	}
	cw := csv.NewWriter(w)
	rec := make([]string, len(cols))
	for j, c := range cols {
		rec[j] = c.Name()
	}
	if err := cw.Write(rec); err != nil {
		return err
	}
	for i := range t.NumRows() {
		for j, c := range cols {
			rec[j] = c.Format(i)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
