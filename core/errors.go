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


package core

import "errors"

// Domain validation errors
var (
	// ErrInsufficientInput indicates the input text yields zero segmentable units.
	// This is the only error class a pipeline run surfaces to its caller.
	ErrInsufficientInput = errors.New("input text yields no segmentable units")

	// ErrEmptyCluster indicates a cluster was constructed with no members.
	ErrEmptyCluster = errors.New("cluster must have at least one member")

	// ErrDimensionMismatch indicates an embedding does not match the configured dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmptyLabel indicates a cluster label is empty.
	ErrEmptyLabel = errors.New("cluster label cannot be empty")
)
