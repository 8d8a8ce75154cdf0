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


package pipeline

import (
	"context"
	"encoding/binary"
	"math"
	"strings"

	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/conceptmap/core"
	"github.com/poiesic/conceptmap/resilience"
)

// embedUnits guarantees every unit leaves this stage with a vector of
// exactly the configured dimension. The live service is tried once for the
// whole batch; any unit the live call could not cover gets the
// deterministic fallback vector for its normalized text.
func (p *Pipeline) embedUnits(ctx context.Context, client *resilience.Client, units []*core.TextUnit) {
	texts := make([]string, len(units))
	for i, u := range units {
		texts[i] = u.Normalized
	}

	result := resilience.Do(ctx, client, "embedding",
		func(ctx context.Context) ([][]float32, error) {
			return p.provider.Embedder().EmbedTexts(ctx, texts)
		},
		func() [][]float32 { return nil },
	)

	if result.OK && len(result.Value) == len(units) {
		for i, u := range units {
			u.Embedding = result.Value[i]
		}
	}

	// Within-run cache: repeated normalized text maps to the same vector
	// without recomputing the projection.
	cache := make(map[string][]float32)
	for _, u := range units {
		if len(u.Embedding) == p.embeddingDim {
			continue
		}
		vec, ok := cache[u.Normalized]
		if !ok {
			vec = fallbackVector(u.Normalized, p.embeddingDim)
			cache[u.Normalized] = vec
		}
		u.Embedding = vec
	}
}

// fallbackVector projects the normalized text into dim dimensions via a
// hashed bag of words: each word's BLAKE2b digest selects a slot and a
// sign, and the accumulated vector is L2-normalized. Identical text yields
// a bit-identical vector within and across runs, which keeps clustering
// reproducible in degraded mode.
func fallbackVector(normalized string, dim int) []float32 {
	vec := make([]float32, dim)

	for _, word := range strings.Fields(normalized) {
		h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
		h.Write([]byte(word))
		digest := binary.LittleEndian.Uint64(h.Sum(nil))

		slot := int(digest % uint64(dim))
		if digest&(1<<63) != 0 {
			vec[slot]--
		} else {
			vec[slot]++
		}
	}

	var sumSquares float64
	for _, x := range vec {
		sumSquares += float64(x) * float64(x)
	}
	if sumSquares == 0 {
		// No words at all; give the unit a fixed direction.
		vec[0] = 1
		return vec
	}
	scale := float32(1 / math.Sqrt(sumSquares))
	for i := range vec {
		vec[i] *= scale
	}
	return vec
}
