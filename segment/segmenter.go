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


package segment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/poiesic/conceptmap/core"
	"golang.org/x/text/unicode/norm"
)

var (
	sentenceEnd = regexp.MustCompile(`[.!?]+`)
	clauseSplit = regexp.MustCompile(`[,;]|\s+and\s+`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Segmenter splits raw text into ordered text units sized for embedding.
// Units target MinWords..MaxWords: sentences longer than MaxWords are split
// at clause boundaries, and trailing fragments shorter than MinWords are
// merged into their predecessor.
type Segmenter struct {
	minWords int
	maxWords int
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithWordRange sets the target unit size in words.
// Defaults are 3 and 30.
func WithWordRange(minWords, maxWords int) Option {
	return func(s *Segmenter) {
		if minWords >= 1 {
			s.minWords = minWords
		}
		if maxWords >= minWords {
			s.maxWords = maxWords
		}
	}
}

// New creates a Segmenter with default sizing.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{minWords: 3, maxWords: 30}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Segment splits text into ordered, non-empty units. It returns
// core.ErrInsufficientInput when the text yields zero units.
func (s *Segmenter) Segment(text string) ([]*core.TextUnit, error) {
	sentences := sentenceEnd.Split(text, -1)

	var raws []string
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		if wordCount(sentence) <= s.maxWords {
			raws = append(raws, sentence)
			continue
		}

		// Oversized sentence: break at clause boundaries.
		for _, clause := range clauseSplit.Split(sentence, -1) {
			clause = strings.TrimSpace(clause)
			if clause != "" {
				raws = append(raws, clause)
			}
		}
	}

	// Merge a trailing fragment too short to stand alone.
	for len(raws) > 1 && wordCount(raws[len(raws)-1]) < s.minWords {
		last := raws[len(raws)-1]
		raws = raws[:len(raws)-1]
		raws[len(raws)-1] = raws[len(raws)-1] + " " + last
	}

	if len(raws) == 0 {
		return nil, fmt.Errorf("segmenting: %w", core.ErrInsufficientInput)
	}

	units := make([]*core.TextUnit, len(raws))
	for i, raw := range raws {
		units[i] = &core.TextUnit{
			ID:         i,
			Raw:        raw,
			Normalized: Normalize(raw),
			ClusterID:  core.UnassignedCluster,
		}
	}
	return units, nil
}

// Normalize produces the cleaned form of a unit used for embedding and
// keyword analysis: NFC-normalized, lowercased, whitespace collapsed.
func Normalize(text string) string {
	text = norm.NFC.String(text)
	text = strings.ToLower(strings.TrimSpace(text))
	return whitespace.ReplaceAllString(text, " ")
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
