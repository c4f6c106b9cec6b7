// journal/csv.go
package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

var csvHeader = []string{"id", "pair", "trade_type", "entry_price", "exit_price", "profit", "date", "time", "session", "mood", "screenshot", "notes"}

type CSVWriter struct {
	w *csv.Writer
}

// NewCSV writes the header row and returns a writer for trade rows.
func NewCSV(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return nil, err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return &CSVWriter{w: cw}, nil
}

func (j *CSVWriter) RecordTrade(t TradeRecord) error {
	err := j.w.Write([]string{
		t.ID,
		t.Pair,
		string(t.TradeType),
		t.EntryPrice.String(),
		t.ExitPrice.String(),
		t.Profit.String(),
		t.Date,
		t.Time,
		string(t.Session),
		string(t.Mood),
		t.Screenshot,
		t.Notes,
	})
	if err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSVWriter) Close() error {
	j.w.Flush()
	return j.w.Error()
}

// WriteCSV writes a header and one row per record.
func WriteCSV(w io.Writer, recs []TradeRecord) error {
	j, err := NewCSV(w)
	if err != nil {
		return err
	}
	for _, r := range recs {
		if err := j.RecordTrade(r); err != nil {
			return err
		}
	}
	return j.Close()
}

// ReadCSV parses a file written by WriteCSV back into forms, one per row,
// so imported rows go through the same validation as typed ones. The id
// column is ignored; the store assigns new ids.
func ReadCSV(r io.Reader) ([]TradeForm, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[h] = i
	}
	for _, h := range []string{"pair", "trade_type", "date"} {
		if _, ok := col[h]; !ok {
			return nil, fmt.Errorf("csv missing column %q", h)
		}
	}

	var out []TradeForm
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		out = append(out, TradeForm{
			Pair:       get("pair"),
			TradeType:  get("trade_type"),
			EntryPrice: get("entry_price"),
			ExitPrice:  get("exit_price"),
			Profit:     get("profit"),
			Date:       get("date"),
			Time:       get("time"),
			Session:    get("session"),
			Mood:       get("mood"),
			Screenshot: get("screenshot"),
			Notes:      get("notes"),
		})
	}
	return out, nil
}

