package instancefile

import (
	"carp-solver/internal/domain"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatSolution renders sol in the benchmark answer format:
//
//	s 0,(2,3),(3,4),0,0,(5,6),0
//	q 42
//
// Each route starts and ends with the depot surrogate 0 and lists its serviced edges
// in traversal direction. Unassigned edges are not part of this format; callers report them separately.
func FormatSolution(sol *domain.Solution) string {
	var b strings.Builder
	b.WriteString("s ")
	for i, r := range sol.Routes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString("0,")
		for _, e := range r.Edges {
			fmt.Fprintf(&b, "(%d,%d),", e.From, e.To)
		}
		b.WriteByte('0')
	}
	b.WriteString("\nq ")
	b.WriteString(strconv.Itoa(sol.TotalCost))
	b.WriteByte('\n')
	return b.String()
}

// WriteSolution writes FormatSolution(sol) to w.
func WriteSolution(w io.Writer, sol *domain.Solution) error {
	if _, err := io.WriteString(w, FormatSolution(sol)); err != nil {
		return fmt.Errorf("write solution: %w", err)
	}
	return nil
}

// Write renders in back into the `.dat` format accepted by Parse.
func Write(w io.Writer, in *domain.Instance) error {
	required := 0
	for _, e := range in.Edges {
		if e.Required() {
			required++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s : %s\n", keyName, in.Name)
	fmt.Fprintf(&b, "%s : %d\n", keyVertices, in.Vertices)
	fmt.Fprintf(&b, "%s : %d\n", keyDepot, in.Depot)
	fmt.Fprintf(&b, "%s : %d\n", keyRequired, required)
	fmt.Fprintf(&b, "%s : %d\n", keyNonRequired, len(in.Edges)-required)
	fmt.Fprintf(&b, "%s : %d\n", keyVehicles, in.Vehicles)
	fmt.Fprintf(&b, "%s : %d\n", keyCapacity, in.Capacity)
	fmt.Fprintf(&b, "%s : %d\n", keyRequiredCost, in.RequiredCost())
	b.WriteString("NODES       COST         DEMAND\n")
	for _, e := range in.Edges {
		fmt.Fprintf(&b, "%d   %d   %d   %d\n", e.X, e.Y, e.Cost, e.Demand)
	}
	b.WriteString("END\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write instance: %w", err)
	}
	return nil
}
