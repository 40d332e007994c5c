package console

import (
	"errors"
	"regexp"
	"strconv"
)

var (
	ErrMalformedLocation = errors.New("malformed location")

	locationRe = regexp.MustCompile(`^\s*([+-]?\d+)\s*,\s*([+-]?\d+)\s*$`)
)

// ParseLocation reads a "row,col" pair. Whitespace around either number
// is ignored. Bounds are left to the caller.
func ParseLocation(s string) (row int, col int, err error) {
	m := locationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, ErrMalformedLocation
	}
	if row, err = strconv.Atoi(m[1]); err != nil {
		return 0, 0, ErrMalformedLocation
	}
	if col, err = strconv.Atoi(m[2]); err != nil {
		return 0, 0, ErrMalformedLocation
	}
	return row, col, nil
}
