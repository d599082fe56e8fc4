package instancefile

import (
	"bufio"
	"carp-solver/internal/domain"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Header keys of the benchmark format.
const (
	keyName         = "NAME"
	keyVertices     = "VERTICES"
	keyDepot        = "DEPOT"
	keyRequired     = "REQUIRED EDGES"
	keyNonRequired  = "NON-REQUIRED EDGES"
	keyVehicles     = "VEHICLES"
	keyCapacity     = "CAPACITY"
	keyRequiredCost = "TOTAL COST OF REQUIRED EDGES"
)

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) (*domain.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parse instance file: open %q: %w", path, err)
	}
	defer f.Close()

	in, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse instance file %q: %w", path, err)
	}
	return in, nil
}

// Parse reads a CARP instance in the benchmark `.dat` format:
//
//	NAME : egl-e1-A
//	VERTICES : 77
//	...
//	NODES       COST         DEMAND
//	1   2   13   0
//	END
//
// Header lines are "KEY : value" and may come in any order; unknown keys are ignored.
// Every line whose first field is an integer is an edge "x y cost demand"; other lines
// without a colon are column captions. Parsing stops at END.
// When the header declares edge counts they must match the edges read.
// Parse does not validate the graph itself; see domain.Instance.Validate.
func Parse(r io.Reader) (*domain.Instance, error) {
	in := &domain.Instance{}
	header := map[string]string{}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "END") {
			break
		}

		if key, val, ok := strings.Cut(line, ":"); ok {
			header[strings.ToUpper(strings.TrimSpace(key))] = strings.TrimSpace(val)
			continue
		}

		if !startsWithInt(line) {
			// Column captions such as "NODES COST DEMAND".
			continue
		}

		e, err := parseEdge(line)
		if err != nil {
			return nil, fmt.Errorf("parse instance: line %d: %w", lineNo, err)
		}
		in.Edges = append(in.Edges, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("parse instance: read: %w", err)
	}

	in.Name = header[keyName]

	ints := []struct {
		key string
		dst *int
	}{
		{keyVertices, &in.Vertices},
		{keyDepot, &in.Depot},
		{keyVehicles, &in.Vehicles},
		{keyCapacity, &in.Capacity},
	}
	for _, f := range ints {
		raw, ok := header[f.key]
		if !ok {
			return nil, fmt.Errorf("parse instance: missing header %q", f.key)
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse instance: header %q value %q: %w", f.key, raw, err)
		}
		*f.dst = v
	}

	required := 0
	for _, e := range in.Edges {
		if e.Required() {
			required++
		}
	}
	if err := checkCount(header, keyRequired, required); err != nil {
		return nil, err
	}
	if err := checkCount(header, keyNonRequired, len(in.Edges)-required); err != nil {
		return nil, err
	}

	return in, nil
}

func parseEdge(line string) (domain.Edge, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return domain.Edge{}, fmt.Errorf("edge %q: want 4 fields (x y cost demand), got %d", line, len(fields))
	}

	var vals [4]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return domain.Edge{}, fmt.Errorf("edge %q field %d: %w", line, i+1, err)
		}
		vals[i] = v
	}
	if vals[0] < 0 || vals[1] < 0 {
		return domain.Edge{}, fmt.Errorf("edge %q: negative vertex id", line)
	}
	return domain.Edge{X: vals[0], Y: vals[1], Cost: vals[2], Demand: vals[3]}, nil
}

// startsWithInt reports whether the first field of line is an integer, signed or not.
func startsWithInt(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	_, err := strconv.Atoi(fields[0])
	return err == nil
}

// checkCount compares a declared edge count with the number read, when the header declares one.
func checkCount(header map[string]string, key string, got int) error {
	raw, ok := header[key]
	if !ok {
		return nil
	}
	want, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("parse instance: header %q value %q: %w", key, raw, err)
	}
	if want != got {
		return fmt.Errorf("parse instance: header %q declares %d edges, read %d", key, want, got)
	}
	return nil
}
