package csv

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"github.com/jvportella/dataset-financial-transactions/internal/datasource"
)

// Decode reads a headed CSV stream into records of type T, matching columns
// to T's `csv` struct tags. Every tagged field must have a column; extra
// columns are ignored.
func Decode[T any](r io.Reader) ([]T, error) {
	cr := csv.NewReader(bufio.NewReaderSize(r, 64*1024))
	h, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read csv header: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	dec, err := csvutil.NewDecoder(cr, NormalizeHeaders(h)...)
	if err != nil {
		return nil, fmt.Errorf("csv decoder: %w", err)
	}
	dec.DisallowMissingColumns = true

	var out []T
	for {
		var rec T
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode row %d: %w", len(out)+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// DecodeSource opens src and decodes it with Decode.
func DecodeSource[T any](ctx context.Context, src datasource.Source) ([]T, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	recs, err := Decode[T](rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name(), err)
	}
	return recs, nil
}
