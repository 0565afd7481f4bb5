package diff

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"swissdamed-migel/internal/fileio"
)

const (
	KeyColumn    = "udiDiCode"
	StatusColumn = "diff_status"

	Added      = "added"
	Removed    = "removed"
	ChangedOld = "changed_old"
	ChangedNew = "changed_new"
)

var (
	ErrHeaderMismatch = errors.New("CSV files have different headers, cannot diff")
	ErrMissingKey     = errors.New("key column not found in headers")
)

// Change is one row of the diff report.
type Change struct {
	Status string
	Row    []string
}

// Summary counts changes; Changed counts changed_new rows.
type Summary struct {
	Added, Removed, Changed int
}

// Compare diffs two exports keyed by udiDiCode. Several rows may share a key;
// for shared keys rows are compared as sets. Keys are walked in sorted order.
func Compare(old, cur *fileio.Table) ([]Change, error) {
	if !slices.Equal(old.Headers, cur.Headers) {
		return nil, ErrHeaderMismatch
	}
	key := slices.Index(old.Headers, KeyColumn)
	if key < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, KeyColumn)
	}

	oldBy, oldKeys := group(old.Rows, key)
	newBy, newKeys := group(cur.Rows, key)

	var out []Change
	for _, k := range newKeys {
		if _, ok := oldBy[k]; !ok {
			out = appendAll(out, Added, newBy[k])
		}
	}
	for _, k := range oldKeys {
		if _, ok := newBy[k]; !ok {
			out = appendAll(out, Removed, oldBy[k])
		}
	}
	for _, k := range oldKeys {
		newRows, ok := newBy[k]
		if !ok {
			continue
		}
		oldRows := oldBy[k]
		oldSet, newSet := rowSet(oldRows), rowSet(newRows)
		if sameSet(oldSet, newSet) {
			continue
		}
		for _, r := range oldRows {
			if _, ok := newSet[rowKey(r)]; !ok {
				out = append(out, Change{Status: ChangedOld, Row: r})
			}
		}
		for _, r := range newRows {
			if _, ok := oldSet[rowKey(r)]; !ok {
				out = append(out, Change{Status: ChangedNew, Row: r})
			}
		}
	}
	return out, nil
}

func Summarize(changes []Change) Summary {
	var s Summary
	for _, c := range changes {
		switch c.Status {
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		case ChangedNew:
			s.Changed++
		}
	}
	return s
}

// WriteReport writes changes to dir/diff_swissdamed_<old>_<new>.csv and
// returns the path.
func WriteReport(dir, oldPath, newPath string, headers []string, changes []Change) (string, error) {
	name := fmt.Sprintf("diff_swissdamed_%s_%s.csv", DateFromFilename(oldPath), DateFromFilename(newPath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	out := filepath.Join(dir, name)

	hdr := append([]string{StatusColumn}, headers...)
	rows := make([][]string, len(changes))
	for i, c := range changes {
		rows[i] = append([]string{c.Status}, c.Row...)
	}

	f, err := os.Create(out)
	if err != nil {
		return "", err
	}
	if err := fileio.WriteCSV(f, hdr, rows); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", out, err)
	}
	return out, f.Close()
}

// DateFromFilename extracts dd.mm.yyyy from swissdamed_dd.mm.yyyy.csv,
// "unknown" otherwise.
func DateFromFilename(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	date := stem
	if i := strings.LastIndexByte(stem, '_'); i >= 0 {
		date = stem[i+1:]
	}
	if len(date) == 10 && strings.Count(date, ".") == 2 {
		return date
	}
	return "unknown"
}

func group(rows [][]string, key int) (map[string][][]string, []string) {
	by := make(map[string][][]string)
	var keys []string
	for _, r := range rows {
		k := ""
		if key < len(r) {
			k = r[key]
		}
		if _, ok := by[k]; !ok {
			keys = append(keys, k)
		}
		by[k] = append(by[k], r)
	}
	sort.Strings(keys)
	return by, keys
}

func appendAll(out []Change, status string, rows [][]string) []Change {
	for _, r := range rows {
		out = append(out, Change{Status: status, Row: r})
	}
	return out
}

func rowKey(r []string) string { return strings.Join(r, "\x1f") }

func rowSet(rows [][]string) map[string]struct{} {
	s := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		s[rowKey(r)] = struct{}{}
	}
	return s
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
