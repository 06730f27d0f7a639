// Package train implements the offline training pipeline: catalog
// ingestion, field cleaning, scaler and forest fitting, artifact
// persistence and run bookkeeping. It runs as a single linear batch job
// and never concurrently with itself.
package train

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/jszwec/csvutil"
	"golang.org/x/text/encoding/charmap"

	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/monitoring"
)

// CatalogRow is one raw record of the device catalog. All fields stay
// strings here; cleaning happens in a separate stage so a malformed field
// drops a row instead of aborting the load.
type CatalogRow struct {
	CompanyName     string `csv:"Company Name"`
	ModelName       string `csv:"Model Name"`
	MobileWeight    string `csv:"Mobile Weight"`
	RAM             string `csv:"RAM"`
	FrontCamera     string `csv:"Front Camera"`
	BackCamera      string `csv:"Back Camera"`
	Processor       string `csv:"Processor"`
	BatteryCapacity string `csv:"Battery Capacity"`
	ScreenSize      string `csv:"Screen Size"`
	LaunchedYear    string `csv:"Launched Year"`
	PriceIndia      string `csv:"Launched Price (India)"`
}

// DatasetLoadError means the training source could not be read at all
// (missing file, undecodable bytes, broken CSV structure). Always fatal to
// the run.
type DatasetLoadError struct {
	Path string
	Err  error
}

func (e *DatasetLoadError) Error() string {
	return fmt.Sprintf("dataset %s: %v", e.Path, e.Err)
}

func (e *DatasetLoadError) Unwrap() error { return e.Err }

// LoadCatalog reads the catalog CSV at path, probing a fixed sequence of
// text encodings: UTF-8 first, then Latin-1, then Windows-1252. Catalog
// exports in the wild carry rupee signs in single-byte encodings, so the
// probe order matters.
func LoadCatalog(path string) ([]CatalogRow, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &DatasetLoadError{Path: path, Err: err}
	}

	var lastErr error
	for _, name := range []string{"utf-8", "latin-1", "windows-1252"} {
		text, err := decodeBytes(raw, name)
		if err != nil {
			lastErr = err
			continue
		}
		rows, err := decodeRows(bytes.NewReader(text))
		if err != nil {
			lastErr = err
			continue
		}
		if name != "utf-8" {
			monitoring.Logf("train: catalog %s decoded as %s", path, name)
		}
		return rows, nil
	}
	return nil, &DatasetLoadError{Path: path, Err: fmt.Errorf("no candidate encoding worked: %w", lastErr)}
}

// decodeBytes converts raw file bytes to UTF-8 text under the named
// encoding. UTF-8 input is only accepted when it validates, so broken
// exports fall through to the single-byte candidates.
func decodeBytes(raw []byte, encoding string) ([]byte, error) {
	switch encoding {
	case "utf-8":
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("not valid utf-8")
		}
		return raw, nil
	case "latin-1":
		return charmap.ISO8859_1.NewDecoder().Bytes(raw)
	case "windows-1252":
		return charmap.Windows1252.NewDecoder().Bytes(raw)
	default:
		return nil, fmt.Errorf("unknown encoding %q", encoding)
	}
}

// decodeRows parses CSV text into catalog rows by header name. Columns
// beyond the tagged ones are ignored.
func decodeRows(r io.Reader) ([]CatalogRow, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []CatalogRow
	for {
		var row CatalogRow
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
