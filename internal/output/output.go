// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output writes generated tweets as a single-column CSV file.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Header is the name of the single CSV column.
const Header = "generated_tweet"

// Write emits the header row followed by one row per tweet, in order.
// Values containing commas, quotes, or newlines are quoted.
func Write(w io.Writer, tweets []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{Header}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, tweet := range tweets {
		if err := cw.Write([]string{tweet}); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV creates or truncates path and writes tweets to it.
func WriteCSV(path string, tweets []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := Write(f, tweets); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
