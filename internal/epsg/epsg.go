// Package epsg reads GEOTRANS EPSG code files.
//
// Each data row is comma separated: the authority ("EPSG"), the code, then
// alternating attribute keys and values:
//
//	Authority,Code,Key,Value,...
//	EPSG,32617,Coordinate System,Universal Transverse Mercator (UTM),Zone,17,Datum,WGE
//
// The header row (first column "Authority") is skipped silently. Blank rows,
// rows without a delimiter and rows from another authority are skipped with a
// warning. A later row for the same code replaces the earlier one.
package epsg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/roach88/ccsbridge/internal/ccs"
)

// Authority is the only authority name accepted in data rows.
const Authority = "EPSG"

// Entry is one EPSG code and its attributes.
type Entry struct {
	Code       string
	Attributes map[string]string
	Line       int
}

// coordinateSystemKeys are the attribute names that may carry the
// coordinate system name, in lookup order.
var coordinateSystemKeys = []string{"Coordinate System", "CoordinateSystem", "Projection"}

// CoordinateType resolves the entry's coordinate system attribute.
func (e Entry) CoordinateType() (ccs.CoordinateType, bool) {
	for _, key := range coordinateSystemKeys {
		for k, v := range e.Attributes {
			if !strings.EqualFold(k, key) {
				continue
			}
			if ct, err := ccs.ParseCoordinateType(v); err == nil {
				return ct, true
			}
		}
	}
	return 0, false
}

// Result holds the entries of a file in first-seen code order, plus the
// warnings produced while reading.
type Result struct {
	Entries  []Entry
	Warnings []string
}

// Lookup returns the entry for code.
func (r *Result) Lookup(code string) (Entry, bool) {
	i := slices.IndexFunc(r.Entries, func(e Entry) bool { return e.Code == code })
	if i < 0 {
		return Entry{}, false
	}
	return r.Entries[i], true
}

// ReadFile reads an EPSG code file from disk.
func ReadFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read EPSG file %s: %w", path, err)
	}
	defer f.Close()

	res, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read EPSG file %s: %w", path, err)
	}
	return res, nil
}

// Read parses EPSG rows from r.
func Read(r io.Reader) (*Result, error) {
	res := &Result{}
	index := map[string]int{}

	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		if line == "" {
			res.warnf(lineNum, "Skipping blank line")
			continue
		}
		if !strings.Contains(line, ",") {
			res.warnf(lineNum, "No delimiter found. Line: '%s'", line)
			continue
		}

		vals := splitRow(line)
		if len(vals) > 0 && vals[0] == "Authority" {
			continue
		}
		if len(vals) == 0 || vals[0] != Authority {
			res.warnf(lineNum, "Invalid EPSG data row '%s'", line)
			continue
		}
		if len(vals) < 2 || vals[1] == "" {
			res.warnf(lineNum, "Missing EPSG code in row '%s'", line)
			continue
		}

		entry := Entry{Code: vals[1], Attributes: map[string]string{}, Line: lineNum}
		for x := 2; x < len(vals); x += 2 {
			if x+1 >= len(vals) {
				res.warnf(lineNum, "Attribute '%s' has no value", vals[x])
				break
			}
			entry.Attributes[vals[x]] = vals[x+1]
		}

		if i, ok := index[entry.Code]; ok {
			res.Entries[i] = entry
			continue
		}
		index[entry.Code] = len(res.Entries)
		res.Entries = append(res.Entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// splitRow splits a row on commas and drops trailing empty fields, so a
// row ending in a delimiter reads the same as one without it.
func splitRow(line string) []string {
	vals := strings.Split(line, ",")
	for len(vals) > 0 && vals[len(vals)-1] == "" {
		vals = vals[:len(vals)-1]
	}
	return vals
}

func (r *Result) warnf(line int, format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf("WARNING: Line %d: ", line)+fmt.Sprintf(format, args...))
}
