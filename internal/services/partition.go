package services

import (
	"carp-solver/internal/domain"
	"slices"
)

// demandIndex is a Fenwick tree over the distinct demands of a set of edges.
// It tracks how many edges of each demand are present and their summed demand.
type demandIndex struct {
	values []int // distinct demands, ascending
	count  []int // 1-based
	sum    []int // 1-based
	top    int   // highest power of two <= len(values)
}

func newDemandIndex(demands []int) *demandIndex {
	values := slices.Clone(demands)
	slices.Sort(values)
	values = slices.Compact(values)

	d := &demandIndex{
		values: values,
		count:  make([]int, len(values)+1),
		sum:    make([]int, len(values)+1),
		top:    1,
	}
	for d.top*2 <= len(values) {
		d.top *= 2
	}
	for _, c := range demands {
		d.add(c, 1)
	}
	return d
}

func (d *demandIndex) add(demand, delta int) {
	i, _ := slices.BinarySearch(d.values, demand)
	for i++; i < len(d.count); i += i & -i {
		d.count[i] += delta
		d.sum[i] += delta * demand
	}
}

func (d *demandIndex) remove(demand int) { d.add(demand, -1) }

func (d *demandIndex) prefixCount(i int) int {
	n := 0
	for ; i > 0; i -= i & -i {
		n += d.count[i]
	}
	return n
}

// fit returns the most edges whose demands sum to at most budget,
// i.e. how many of the smallest demands fit.
func (d *demandIndex) fit(budget int) int {
	pos, n, total := 0, 0, 0
	for step := d.top; step > 0; step >>= 1 {
		next := pos + step
		if next < len(d.count) && total+d.sum[next] <= budget {
			pos, n, total = next, n+d.count[next], total+d.sum[next]
		}
	}
	// Buckets 1..pos fit entirely; the next one may fit in part.
	if pos < len(d.values) {
		inBucket := d.prefixCount(pos+1) - d.prefixCount(pos)
		n += min(inBucket, (budget-total)/d.values[pos])
	}
	return n
}

// maxCountSubset solves a 0/1 knapsack that maximises the number of edges whose
// summed demand stays within capacity. Edge cost is ignored.
//
// The subset is the one a 1-D DP over 0..capacity reconstructs through per-item
// back-pointers when an item that ties the current best still replaces it (>=),
// so later edges win ties. Because every edge is worth one, the DP cell best[j]
// over edges 0..i is just how many of their smallest demands fit in j. Walking the
// edges backwards with a demandIndex answers "did edge i improve cell j" without
// storing the table: memory is O(edges) and nothing is sized by capacity.
// Returns ascending indices into edges; empty when nothing fits.
func maxCountSubset(edges []domain.Edge, capacity int) []int {
	picked := []int{}
	if capacity <= 0 {
		return picked
	}

	fits := func(c int) bool { return c > 0 && c <= capacity }

	demands := make([]int, 0, len(edges))
	for _, e := range edges {
		if fits(e.Demand) {
			demands = append(demands, e.Demand)
		}
	}
	idx := newDemandIndex(demands)

	j := capacity
	for i := len(edges) - 1; i >= 0; i-- {
		c := edges[i].Demand
		if !fits(c) {
			continue
		}
		// idx now holds edges 0..i-1, the DP state edge i was compared against.
		idx.remove(c)
		if c <= j && idx.fit(j-c)+1 >= idx.fit(j) {
			picked = append(picked, i)
			j -= c
		}
	}

	slices.Reverse(picked)
	return picked
}

// PartitionByCount splits the pool into per-vehicle bundles, one knapsack per vehicle,
// until the pool is empty or vehicles run out. Each bundle's demand fits capacity.
//
// If a fresh vehicle cannot take a single edge (every remaining demand exceeds capacity)
// partitioning stops early; those edges stay in the pool and are reported as unassigned.
func PartitionByCount(pool *EdgePool, capacity, vehicles int) [][]domain.Edge {
	bundles := [][]domain.Edge{}
	for v := 0; v < vehicles && !pool.Empty(); v++ {
		picked := maxCountSubset(pool.Edges(), capacity)
		if len(picked) == 0 {
			break
		}
		bundles = append(bundles, pool.Take(picked))
	}
	return bundles
}

// KnapsackPartitionBuilder first partitions the pool by edge count under capacity,
// then sequences each vehicle's bundle independently with SequenceBundle.
// Counting edges is a cheap proxy for balancing load; it does not look at cost.
type KnapsackPartitionBuilder struct{}

func (KnapsackPartitionBuilder) Name() string { return StrategyKnapsackPartition }

func (b KnapsackPartitionBuilder) BuildRoutes(
	in *domain.Instance,
	dist *domain.DistanceMatrix,
	pool *EdgePool,
) (*domain.Solution, error) {
	acc := newAccumulator(in, dist)

	bundles := PartitionByCount(pool, in.Capacity, in.Vehicles)
	for i, bundle := range bundles {
		v := acc.startVehicle(i + 1)
		if err := acc.sequenceBundle(v, bundle); err != nil {
			return nil, err
		}
		acc.close(v)
	}

	return acc.solution(b.Name(), pool), nil
}
