// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package recommend

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches runs of two or more letters, digits, or underscores.
// Single-character fragments carry no signal for book descriptions and are
// dropped, matching the behavior of the usual \w\w+ analyzer.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// tokenize lowercases text, extracts word tokens, and filters stop words.
// Returns nil when nothing survives.
func tokenize(text string) []string {
	matches := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(matches) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, stop := englishStopWords[m]; stop {
			continue
		}
		tokens = append(tokens, m)
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// SparseVector is a sparse row of TF-IDF weights. Indices are column
// positions into the vectorizer vocabulary, sorted ascending, with one
// value per index. All fields are exported for gob serialization.
type SparseVector struct {
	Indices []int32
	Values  []float64
}

// Dot computes the dot product of two sparse vectors via a merge walk over
// their sorted index lists.
func (v SparseVector) Dot(o SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm returns the Euclidean length of the vector.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, val := range v.Values {
		sum += val * val
	}
	return math.Sqrt(sum)
}

// normalize scales the vector to unit length in place. A zero vector is
// left untouched so all-stop-word queries stay all-zero.
func (v SparseVector) normalize() {
	norm := v.Norm()
	if norm == 0 {
		return
	}
	for i := range v.Values {
		v.Values[i] /= norm
	}
}

// Vectorizer converts free text into L2-normalized TF-IDF vectors. It is
// fitted once over the catalog corpus and then shared, immutable, between
// the builder (row vectors) and the engine (query vectors), so both sides
// agree on vocabulary, column order, and IDF weights.
//
// Weighting: term frequency is log-scaled (1 + ln tf) and multiplied by a
// smoothed inverse document frequency, ln((1+N)/(1+df)) + 1. The smoothing
// keeps fully-common terms at a positive weight and avoids division by zero
// for unseen terms.
type Vectorizer struct {
	// Vocabulary maps a term to its column index. Columns are assigned in
	// lexicographic term order so fitting the same corpus always yields the
	// same layout.
	Vocabulary map[string]int32

	// IDF holds the inverse document frequency per column.
	IDF []float64

	// DocCount is the number of documents the vectorizer was fitted on.
	DocCount int
}

// fitVectorizer builds a vectorizer over the corpus, keeping at most
// maxFeatures terms. When the distinct term count exceeds the cap, terms
// are ranked by document frequency (ties broken lexicographically) and the
// top maxFeatures survive.
func fitVectorizer(docs []string, maxFeatures int) (*Vectorizer, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}

	// Document frequency per term.
	docFreq := make(map[string]int)
	seen := make(map[string]struct{})
	for _, doc := range docs {
		clear(seen)
		for _, tok := range tokenize(doc) {
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			docFreq[tok]++
		}
	}

	if len(docFreq) == 0 {
		return nil, fmt.Errorf("%w: no terms survive tokenization", ErrEmptyCorpus)
	}

	terms := make([]string, 0, len(docFreq))
	for t := range docFreq {
		terms = append(terms, t)
	}

	// Cap the vocabulary by document frequency, then fix column order
	// lexicographically for determinism.
	if maxFeatures > 0 && len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if docFreq[terms[i]] != docFreq[terms[j]] {
				return docFreq[terms[i]] > docFreq[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	v := &Vectorizer{
		Vocabulary: make(map[string]int32, len(terms)),
		IDF:        make([]float64, len(terms)),
		DocCount:   len(docs),
	}
	n := float64(len(docs))
	for i, t := range terms {
		v.Vocabulary[t] = int32(i)
		df := float64(docFreq[t])
		v.IDF[i] = math.Log((1+n)/(1+df)) + 1
	}
	return v, nil
}

// Dimensions returns the number of vocabulary columns.
func (v *Vectorizer) Dimensions() int {
	return len(v.IDF)
}

// Transform vectorizes a single text into a unit-length TF-IDF row.
// Out-of-vocabulary terms are dropped; if no term is known the result is a
// zero vector (empty index list).
func (v *Vectorizer) Transform(text string) SparseVector {
	counts := make(map[int32]float64)
	for _, tok := range tokenize(text) {
		if col, ok := v.Vocabulary[tok]; ok {
			counts[col]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	indices := make([]int32, 0, len(counts))
	for col := range counts {
		indices = append(indices, col)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	values := make([]float64, len(indices))
	for i, col := range indices {
		tf := 1 + math.Log(counts[col])
		values[i] = tf * v.IDF[col]
	}

	vec := SparseVector{Indices: indices, Values: values}
	vec.normalize()
	return vec
}

// validate checks internal consistency after deserialization.
func (v *Vectorizer) validate() error {
	if len(v.Vocabulary) != len(v.IDF) {
		return fmt.Errorf("vocabulary size %d does not match idf size %d", len(v.Vocabulary), len(v.IDF))
	}
	for term, col := range v.Vocabulary {
		if col < 0 || int(col) >= len(v.IDF) {
			return fmt.Errorf("term %q maps to out-of-range column %d", term, col)
		}
	}
	return nil
}
