package driver

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"resultscope/internal/errs"
)

// recorderQuery reads driver cases in recording order. OpenMDAO's SQLite
// case recorder keeps each case's outputs as a JSON object in this table.
const recorderQuery = `SELECT counter, outputs FROM driver_iterations ORDER BY counter`

// ReadRecorder reads the driver cases of an OpenMDAO SQLite recorder file.
// Output names keep the order in which they are first seen. The file is
// opened read-only; a missing file fails with errs.ErrLoad and a malformed
// outputs payload with errs.ErrParse.
func ReadRecorder(ctx context.Context, path string) (Records, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errs.Load(err, "recorder")
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, errs.Load(err, "open recorder %s", path)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, recorderQuery)
	if err != nil {
		return nil, errs.Load(err, "query recorder %s", path)
	}
	defer rows.Close()

	var rec Records
	for rows.Next() {
		var counter int64
		var payload []byte
		if err := rows.Scan(&counter, &payload); err != nil {
			return nil, errs.Load(err, "scan recorder %s", path)
		}
		if len(payload) == 0 {
			continue
		}
		pairs, err := decodeOrdered(payload)
		if err != nil {
			return nil, fmt.Errorf("recorder %s case %d: %w", path, counter, err)
		}
		for _, p := range pairs {
			rec = rec.Add(p.name, p.value)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Load(err, "read recorder %s", path)
	}
	return rec, nil
}

type pair struct {
	name  string
	value any
}

// decodeOrdered decodes a JSON object keeping its key order.
func decodeOrdered(data []byte) ([]pair, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, errs.Parse("outputs: %v", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errs.Parse("outputs: expected object, got %v", tok)
	}
	var out []pair
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errs.Parse("outputs: %v", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, errs.Parse("outputs: unexpected token %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, errs.Parse("outputs %q: %v", name, err)
		}
		out = append(out, pair{name: name, value: v})
	}
	if _, err := dec.Token(); err != nil {
		return nil, errs.Parse("outputs: %v", err)
	}
	return out, nil
}
