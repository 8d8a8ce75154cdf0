// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package cluster

import (
	"fmt"
	"math"
	"sort"

	"github.com/poiesic/conceptmap/core"
)

// Engine partitions embedded text units into concept clusters using
// Lloyd's iterations over Euclidean distance. Everything about it is
// deterministic for a fixed seed: centroid initialization is farthest-point
// sampling anchored by the seed, assignment ties go to the lowest cluster
// index, and output ordering is by descending size with ties broken by the
// lowest member unit ID.
type Engine struct {
	maxClusters   int
	maxIterations int
	seed          int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxClusters caps the cluster count. Default is 10.
func WithMaxClusters(max int) Option {
	return func(e *Engine) {
		if max >= 1 {
			e.maxClusters = max
		}
	}
}

// WithMaxIterations caps Lloyd's iterations. Default is 50.
func WithMaxIterations(max int) Option {
	return func(e *Engine) {
		if max >= 1 {
			e.maxIterations = max
		}
	}
}

// WithSeed anchors centroid initialization. Default is 42.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// New creates a clustering engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxClusters:   10,
		maxIterations: 50,
		seed:          42,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ClusterCount returns k for n units: clamp(round(sqrt(n/2)), 1, min(n, maxClusters)).
func (e *Engine) ClusterCount(n int) int {
	k := int(math.Round(math.Sqrt(float64(n) / 2)))
	if k < 1 {
		k = 1
	}
	upper := e.maxClusters
	if n < upper {
		upper = n
	}
	if k > upper {
		k = upper
	}
	return k
}

// Partition groups the units into k non-empty clusters and stamps each
// unit's ClusterID in place. Units must all carry embeddings of the same
// dimension.
func (e *Engine) Partition(units []*core.TextUnit) ([]*core.Cluster, error) {
	n := len(units)
	if n == 0 {
		return nil, fmt.Errorf("clustering: %w", core.ErrInsufficientInput)
	}
	dim := len(units[0].Embedding)
	for _, u := range units {
		if len(u.Embedding) != dim || dim == 0 {
			return nil, fmt.Errorf("unit %d: %w", u.ID, core.ErrDimensionMismatch)
		}
	}

	k := e.ClusterCount(n)
	centroids := e.initCentroids(units, k)
	assignment := make([]int, n)

	for iter := 0; iter < e.maxIterations; iter++ {
		changed := false
		for i, u := range units {
			nearest := nearestCentroid(u.Embedding, centroids)
			if iter == 0 || nearest != assignment[i] {
				assignment[i] = nearest
				changed = true
			}
		}
		if !changed {
			break
		}
		recomputeCentroids(units, assignment, centroids)
	}

	e.repairEmptyClusters(units, assignment, centroids)

	return buildClusters(units, assignment, centroids)
}

// initCentroids picks k distinct units as starting centroids via
// farthest-point sampling. The first pick is anchored by the seed; each
// subsequent pick maximizes distance to its nearest chosen centroid, ties
// to the lowest unit ID.
func (e *Engine) initCentroids(units []*core.TextUnit, k int) [][]float64 {
	n := len(units)
	first := int(e.seed % int64(n))
	if first < 0 {
		first += n
	}

	chosen := make([]int, 0, k)
	chosen = append(chosen, first)

	for len(chosen) < k {
		best, bestDist := -1, -1.0
		for i := range units {
			nearest := math.Inf(1)
			for _, c := range chosen {
				if d := squaredDistance(units[i].Embedding, units[c].Embedding); d < nearest {
					nearest = d
				}
			}
			if nearest > bestDist {
				best, bestDist = i, nearest
			}
		}
		chosen = append(chosen, best)
	}

	centroids := make([][]float64, k)
	for j, idx := range chosen {
		centroids[j] = toFloat64(units[idx].Embedding)
	}
	return centroids
}

// repairEmptyClusters moves the point farthest from the largest cluster's
// centroid into each empty cluster, then recomputes the affected pair of
// centroids. No output may contain an empty cluster.
func (e *Engine) repairEmptyClusters(units []*core.TextUnit, assignment []int, centroids [][]float64) {
	k := len(centroids)
	for {
		sizes := make([]int, k)
		for _, a := range assignment {
			sizes[a]++
		}

		empty := -1
		for j := 0; j < k; j++ {
			if sizes[j] == 0 {
				empty = j
				break
			}
		}
		if empty == -1 {
			return
		}

		// Donor is the currently largest cluster, ties to the lowest index.
		donor := 0
		for j := 1; j < k; j++ {
			if sizes[j] > sizes[donor] {
				donor = j
			}
		}

		farthest, farthestDist := -1, -1.0
		for i, a := range assignment {
			if a != donor {
				continue
			}
			if d := squaredDistance64(toFloat64(units[i].Embedding), centroids[donor]); d > farthestDist {
				farthest, farthestDist = i, d
			}
		}

		assignment[farthest] = empty
		recomputePair(units, assignment, centroids, donor, empty)
	}
}

func buildClusters(units []*core.TextUnit, assignment []int, centroids [][]float64) ([]*core.Cluster, error) {
	k := len(centroids)
	members := make([][]int, k)
	for i, a := range assignment {
		members[a] = append(members[a], units[i].ID)
	}

	clusters := make([]*core.Cluster, 0, k)
	for j := 0; j < k; j++ {
		sort.Ints(members[j])
		clusters = append(clusters, &core.Cluster{
			MemberIDs: members[j],
			Centroid:  toFloat32(centroids[j]),
		})
	}

	// Largest first; ties broken by the lowest member unit ID.
	sort.SliceStable(clusters, func(a, b int) bool {
		if clusters[a].Size() != clusters[b].Size() {
			return clusters[a].Size() > clusters[b].Size()
		}
		return clusters[a].MemberIDs[0] < clusters[b].MemberIDs[0]
	})

	byUnit := make(map[int]int, len(units))
	for i, c := range clusters {
		c.ID = i
		for _, id := range c.MemberIDs {
			byUnit[id] = i
		}
		if err := core.ValidateCluster(c); err != nil {
			return nil, err
		}
	}
	for _, u := range units {
		u.ClusterID = byUnit[u.ID]
	}
	return clusters, nil
}

func nearestCentroid(v []float32, centroids [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for j, c := range centroids {
		if d := squaredDistance64(toFloat64(v), c); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

func recomputeCentroids(units []*core.TextUnit, assignment []int, centroids [][]float64) {
	k := len(centroids)
	dim := len(centroids[0])
	sums := make([][]float64, k)
	counts := make([]int, k)
	for j := range sums {
		sums[j] = make([]float64, dim)
	}
	for i, u := range units {
		j := assignment[i]
		counts[j]++
		for d, x := range u.Embedding {
			sums[j][d] += float64(x)
		}
	}
	for j := 0; j < k; j++ {
		if counts[j] == 0 {
			continue // stale centroid; repair handles empty clusters
		}
		for d := range sums[j] {
			centroids[j][d] = sums[j][d] / float64(counts[j])
		}
	}
}

// recomputePair refreshes exactly the two centroids touched by a repair move.
func recomputePair(units []*core.TextUnit, assignment []int, centroids [][]float64, a, b int) {
	for _, j := range []int{a, b} {
		dim := len(centroids[j])
		sum := make([]float64, dim)
		count := 0
		for i, asg := range assignment {
			if asg != j {
				continue
			}
			count++
			for d, x := range units[i].Embedding {
				sum[d] += float64(x)
			}
		}
		if count == 0 {
			continue
		}
		for d := range sum {
			centroids[j][d] = sum[d] / float64(count)
		}
	}
}

func squaredDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

func squaredDistance64(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
