// Package foodlist parses the plain "<emoji> <name>" food list. It holds no
// generated code, so cmd/foodgen can build before table.go exists.
package foodlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ErrEmpty is returned when a food source holds no usable entries.
var ErrEmpty = errors.New("catalog has no foods")

// Food is one catalog entry.
type Food struct {
	Symbol rune
	Name   string
}

// String returns the food's emoji.
func (f Food) String() string {
	return string(f.Symbol)
}

// Parse reads "<emoji> <name>" lines. The food's symbol is the first code
// point of the line and its name everything after the first space; lines
// without a space are skipped.
func Parse(r io.Reader) ([]Food, error) {
	var foods []Food
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		ix := strings.IndexByte(line, ' ')
		if ix == -1 {
			continue
		}
		symbol, _ := utf8.DecodeRuneInString(line)
		name := strings.TrimSpace(line[ix+1:])
		if symbol == utf8.RuneError || name == "" {
			continue
		}
		foods = append(foods, Food{Symbol: symbol, Name: name})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read food list: %w", err)
	}
	return foods, nil
}
