package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn       string   // Column name for dates (default: autodetect "ds"/"date"/"Month")
	ValueColumn      string   // Column name for series values (default: "y")
	ExogenousColumns []string // Columns to load as exogenous regressors (optional)
	DateFormat       string   // Date format (default: "2006-01-02")
	HasHeader        bool     // Whether CSV has header row (default: true)
	Delimiter        rune     // Field delimiter (default: ',')
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		ValueColumn: "y",
		DateFormat:  "2006-01-02",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// LoadCSV loads a monthly series, and optionally exogenous regressor
// columns, from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, *ExogenousSet, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a series and exogenous columns from an io.Reader.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, *ExogenousSet, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	if !opts.HasHeader {
		return nil, nil, errors.New("headerless CSV is not supported; name the date and value columns")
	}

	header, err := reader.Read()
	if err != nil {
		return nil, nil, err
	}

	valueIdx, dateIdx := -1, -1
	exogIdx := make(map[string]int, len(opts.ExogenousColumns))
	for i, h := range header {
		h = strings.TrimSpace(strings.Trim(h, "\""))
		switch {
		case h == opts.ValueColumn:
			valueIdx = i
		case opts.DateColumn != "" && h == opts.DateColumn:
			dateIdx = i
		case opts.DateColumn == "" && (h == "ds" || h == "date" || h == "Date" || h == "Month"):
			if dateIdx == -1 {
				dateIdx = i
			}
		}
		for _, name := range opts.ExogenousColumns {
			if h == name {
				exogIdx[name] = i
			}
		}
	}

	if valueIdx == -1 {
		return nil, nil, fmt.Errorf("value column %q not found", opts.ValueColumn)
	}
	if dateIdx == -1 {
		return nil, nil, errors.New("date column not found")
	}
	for _, name := range opts.ExogenousColumns {
		if _, ok := exogIdx[name]; !ok {
			return nil, nil, fmt.Errorf("exogenous column %q not found", name)
		}
	}

	var (
		values     []float64
		timestamps []time.Time
	)
	exogCols := make(map[string][]float64, len(opts.ExogenousColumns))

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		val, err := parseCSVFloat(record[valueIdx])
		if err != nil {
			continue // Skip rows with missing or invalid values
		}

		ts, err := parseCSVDate(record[dateIdx], opts.DateFormat)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot parse date %q: %w", record[dateIdx], err)
		}

		exogRow := make(map[string]float64, len(exogIdx))
		ok := true
		for name, idx := range exogIdx {
			v, err := parseCSVFloat(record[idx])
			if err != nil {
				ok = false
				break
			}
			exogRow[name] = v
		}
		if !ok {
			continue
		}

		values = append(values, val)
		timestamps = append(timestamps, ts)
		for name, v := range exogRow {
			exogCols[name] = append(exogCols[name], v)
		}
	}

	if len(values) == 0 {
		return nil, nil, errors.New("no valid data found in CSV")
	}

	series := &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       opts.ValueColumn,
	}

	if len(opts.ExogenousColumns) == 0 {
		return series, nil, nil
	}

	exog := NewExogenousSet()
	for _, name := range opts.ExogenousColumns {
		exog.Add(name, exogCols[name])
	}
	return series, exog, nil
}

func parseCSVFloat(field string) (float64, error) {
	s := strings.TrimSpace(strings.Trim(field, "\""))
	if s == "" || s == "NA" || s == "NaN" || s == "null" {
		return 0, errors.New("missing value")
	}
	return strconv.ParseFloat(s, 64)
}

func parseCSVDate(field, preferred string) (time.Time, error) {
	s := strings.TrimSpace(strings.Trim(field, "\""))
	formats := []string{
		preferred,
		"2006-01-02",
		"2006-01",
		"2006/01/02",
		"01/2006",
		"Jan-2006",
	}
	var (
		ts  time.Time
		err error
	)
	for _, f := range formats {
		ts, err = time.Parse(f, s)
		if err == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}

// SaveCSV saves a series to a CSV file with "ds,y" columns.
func SaveCSV(series *Series, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	writer.WriteString("ds,y\n")
	for i, v := range series.Values {
		writer.WriteString(series.Timestamps[i].Format("2006-01-02"))
		writer.WriteString(",")
		writer.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		writer.WriteString("\n")
	}

	return nil
}
