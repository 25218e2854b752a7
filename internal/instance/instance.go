// Package instance reads bin packing instance files from disk.
//
// Two layouts are understood. The one-dimensional layout lists the item
// count, the bin capacity and then one weight per line. The
// multi-dimensional layout lists the item count, a "W H" bin line and
// then rows of "id w h d b p", of which only w is used as the weight.
// When H is -1 the capacity is W, otherwise W*H. Lines that do not start
// with a digit or '-' are ignored in both layouts.
package instance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/eugenenazirov/binpacker/internal/packing"
)

// ErrMalformed is returned when a file does not follow either layout.
var ErrMalformed = errors.New("malformed instance file")

// Load reads and validates the instance stored at path. The instance is
// named after the path.
func Load(path string) (packing.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return packing.Instance{}, fmt.Errorf("open instance: %w", err)
	}
	defer f.Close()

	in, err := Parse(f)
	if err != nil {
		return packing.Instance{}, fmt.Errorf("%s: %w", path, err)
	}
	in.Name = path
	return in, nil
}

// Parse decodes an instance from r and validates it.
func Parse(r io.Reader) (packing.Instance, error) {
	lines, err := dataLines(r)
	if err != nil {
		return packing.Instance{}, err
	}
	if len(lines) < 2 {
		return packing.Instance{}, fmt.Errorf("%w: expected item count and capacity lines", ErrMalformed)
	}

	count, err := strconv.Atoi(lines[0])
	if err != nil || count < 0 {
		return packing.Instance{}, fmt.Errorf("%w: bad item count %q", ErrMalformed, lines[0])
	}

	var in packing.Instance
	header := strings.Fields(lines[1])
	switch len(header) {
	case 1:
		in, err = parseWeights(count, header[0], lines[2:])
	case 2:
		in, err = parseRows(count, header, lines[2:])
	default:
		err = fmt.Errorf("%w: bad capacity line %q", ErrMalformed, lines[1])
	}
	if err != nil {
		return packing.Instance{}, err
	}
	if err := in.Validate(); err != nil {
		return packing.Instance{}, err
	}
	return in, nil
}

func parseWeights(count int, capacity string, rest []string) (packing.Instance, error) {
	c, err := strconv.Atoi(capacity)
	if err != nil {
		return packing.Instance{}, fmt.Errorf("%w: bad capacity %q", ErrMalformed, capacity)
	}
	if len(rest) < count {
		return packing.Instance{}, fmt.Errorf("%w: expected %d weights, found %d", ErrMalformed, count, len(rest))
	}

	items := make([]int, 0, count)
	for _, line := range rest[:count] {
		w, err := strconv.Atoi(strings.Fields(line)[0])
		if err != nil {
			return packing.Instance{}, fmt.Errorf("%w: bad weight %q", ErrMalformed, line)
		}
		items = append(items, w)
	}
	return packing.Instance{Capacity: c, Items: items}, nil
}

func parseRows(count int, header, rest []string) (packing.Instance, error) {
	width, err := strconv.Atoi(header[0])
	if err != nil {
		return packing.Instance{}, fmt.Errorf("%w: bad bin width %q", ErrMalformed, header[0])
	}
	height, err := strconv.Atoi(header[1])
	if err != nil {
		return packing.Instance{}, fmt.Errorf("%w: bad bin height %q", ErrMalformed, header[1])
	}
	capacity := width
	if height != -1 {
		capacity = width * height
		if width != 0 && capacity/width != height {
			return packing.Instance{}, fmt.Errorf("%w: bin area %d x %d overflows", ErrMalformed, width, height)
		}
	}

	items := make([]int, 0, count)
	for _, line := range rest {
		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}
		w, err := strconv.Atoi(fields[1])
		if err != nil {
			return packing.Instance{}, fmt.Errorf("%w: bad item row %q", ErrMalformed, line)
		}
		items = append(items, w)
	}
	if len(items) != count {
		return packing.Instance{}, fmt.Errorf("%w: expected %d item rows, found %d", ErrMalformed, count, len(items))
	}
	return packing.Instance{Capacity: capacity, Items: items}, nil
}

func dataLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if c := line[0]; (c < '0' || c > '9') && c != '-' {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read instance: %w", err)
	}
	return lines, nil
}

// List returns the files under dir as slash-separated paths relative to
// dir, sorted.
func List(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list instances: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// ValidFiles splits names into those that exist as regular files under
// dir and those that do not, preserving order.
func ValidFiles(names []string, dir string) (valid, missing []string) {
	for _, name := range names {
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil || info.IsDir() {
			missing = append(missing, name)
			continue
		}
		valid = append(valid, name)
	}
	return valid, missing
}
