package matrix

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
)

// ReadCSV parses a labeled matrix from CSV. The first row holds cell names
// (its leading field is ignored), each subsequent row starts with a gene name
// followed by one value per cell. "NA" and "NaN" parse as NaN.
func ReadCSV(r io.Reader) (*Dense, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header row: %v", ErrParse, err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: header has no cell names", ErrParse)
	}
	cols := header[1:]

	var (
		rows []string
		data []float64
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		if len(rec) != len(cols)+1 {
			return nil, fmt.Errorf("%w: row %q has %d values, want %d", ErrParse, rec[0], len(rec)-1, len(cols))
		}
		rows = append(rows, rec[0])
		for _, field := range rec[1:] {
			v, err := parseValue(field)
			if err != nil {
				return nil, fmt.Errorf("%w: row %q: %v", ErrParse, rec[0], err)
			}
			data = append(data, v)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrParse)
	}
	return NewDense(rows, cols, data)
}

func parseValue(field string) (float64, error) {
	switch field {
	case "NA", "NaN", "nan":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(field, 64)
}

// WriteCSV writes a labeled matrix in the layout ReadCSV accepts. NaN values
// are written as "NA".
func WriteCSV(w io.Writer, m Matrix) error {
	cw := csv.NewWriter(w)

	header := append([]string{""}, m.ColNames()...)
	if err := cw.Write(header); err != nil {
		return err
	}

	r, c := m.Dims()
	rec := make([]string, c+1)
	for i := 0; i < r; i++ {
		rec[0] = m.RowNames()[i]
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) {
				rec[j+1] = "NA"
			} else {
				rec[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
