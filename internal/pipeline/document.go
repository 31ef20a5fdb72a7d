package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
	"github.com/ajitpratap0/colprof/pkg/column"
	"github.com/ajitpratap0/colprof/pkg/compression"
	"github.com/ajitpratap0/colprof/pkg/json"
	"github.com/ajitpratap0/colprof/pkg/posterior"
)

// Stdio is the path that reads a document from stdin or writes a report
// to stdout.
const Stdio = "-"

// ColumnInput is one column of an input document.
type ColumnInput struct {
	Name          string                             `json:"name"`
	Values        []interface{}                      `json:"values"`
	TypePosterior map[string]float64                 `json:"type_posterior"`
	RowPosteriors map[string]posterior.RowPosteriors `json:"row_posteriors"`
	// OverrideType reclassifies the column after profiling
	OverrideType string `json:"override_type,omitempty"`
}

// Input converts the document column to a column.Input.
func (c ColumnInput) Input() column.Input {
	return column.Input{
		Name:          c.Name,
		Values:        c.Values,
		TypePosterior: c.TypePosterior,
		RowPosteriors: c.RowPosteriors,
	}
}

// Document is a batch of columns to profile.
type Document struct {
	Columns []ColumnInput `json:"columns"`
}

// Find returns the column called name.
func (d Document) Find(name string) (ColumnInput, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnInput{}, false
}

// Stats summarises a run.
type Stats struct {
	Columns        int     `json:"columns"`
	Reclassified   int     `json:"reclassified"`
	Failed         int     `json:"failed"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// Report is the result of a run, with one summary per input column in
// input order.
type Report struct {
	RunID   string           `json:"run_id"`
	Columns []column.Summary `json:"columns"`
	Stats   Stats            `json:"stats"`
}

// ReadDocument reads a JSON document from path, decompressing it when the
// extension names a codec. Path "-" reads stdin.
func ReadDocument(ctx context.Context, path string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	var (
		data []byte
		err  error
	)
	if path == Stdio {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // G304: input path comes from the operator
	}
	if err != nil {
		return Document{}, colerrors.Wrap(err, colerrors.ErrorTypeFile, "failed to read document").
			WithDetail("path", path)
	}

	data, err = compression.DecompressPath(path, data)
	if err != nil {
		return Document{}, colerrors.Wrap(err, colerrors.ErrorTypeFile, "failed to decompress document").
			WithDetail("path", path)
	}

	// numeric cells keep their literal text so large IDs stay distinct
	var doc Document
	if err := json.UnmarshalUseNumber(data, &doc); err != nil {
		return Document{}, colerrors.Wrap(err, colerrors.ErrorTypeData, "failed to decode document").
			WithDetail("path", path)
	}
	return doc, nil
}

// WriteReport writes r as indented JSON to path, compressing it when the
// extension names a codec. Path "-" writes to stdout.
func WriteReport(path string, r *Report) error {
	if path == Stdio {
		return EncodeReport(os.Stdout, r)
	}

	var buf bytes.Buffer
	if err := EncodeReport(&buf, r); err != nil {
		return err
	}

	data := buf.Bytes()
	if algo := compression.AlgorithmFromPath(path); algo != compression.None {
		comp, err := compression.NewCompressor(&compression.Config{Algorithm: algo, Level: compression.Default})
		if err != nil {
			return err
		}
		if data, err = comp.Compress(data); err != nil {
			return colerrors.Wrap(err, colerrors.ErrorTypeFile, "failed to compress report").
				WithDetail("path", path)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return colerrors.Wrap(err, colerrors.ErrorTypeFile, "failed to write report").
			WithDetail("path", path)
	}
	return nil
}

// EncodeReport writes r as indented JSON to w.
func EncodeReport(w io.Writer, r *Report) error {
	if err := json.WriteIndented(w, r); err != nil {
		return colerrors.Wrap(err, colerrors.ErrorTypeInternal, "failed to encode report")
	}
	return nil
}
