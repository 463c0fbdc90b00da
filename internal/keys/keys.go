package keys

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gribdefs/internal"
)

var ErrMalformedKey = errors.New("malformed classification key")

// Parse reads one "discipline:category:parameterNumber" triple.
func Parse(raw string) (internal.ClassificationKey, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 3 {
		return internal.ClassificationKey{}, fmt.Errorf("%w: %q: want discipline:category:number", ErrMalformedKey, raw)
	}

	nums := [3]int{}
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return internal.ClassificationKey{}, fmt.Errorf("%w: %q: field %d is not a non-negative integer", ErrMalformedKey, raw, i+1)
		}
		nums[i] = n
	}

	return internal.ClassificationKey{Discipline: nums[0], Category: nums[1], Number: nums[2]}, nil
}

// ParseAll validates every literal and drops duplicate triples, keeping the
// first occurrence of each.
func ParseAll(literals []string) ([]internal.ClassificationKey, error) {
	out := make([]internal.ClassificationKey, 0, len(literals))
	for _, lit := range literals {
		key, err := Parse(lit)
		if err != nil {
			return nil, err
		}
		out = append(out, key)
	}
	return Dedupe(out), nil
}

func Dedupe(in []internal.ClassificationKey) []internal.ClassificationKey {
	seen := map[internal.ClassificationKey]struct{}{}
	out := make([]internal.ClassificationKey, 0, len(in))
	for _, key := range in {
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// Read parses a key list with one triple per line. Blank lines and lines
// starting with '#' are skipped.
func Read(r io.Reader) ([]internal.ClassificationKey, error) {
	scanner := bufio.NewScanner(r)
	var literals []string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := Parse(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		literals = append(literals, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ParseAll(literals)
}

func ReadFile(path string) ([]internal.ClassificationKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Load returns the keys from path, or the built-in list when path is empty.
func Load(path string) ([]internal.ClassificationKey, error) {
	if strings.TrimSpace(path) == "" {
		return ParseAll(Defaults)
	}
	return ReadFile(path)
}
