// Package embedding implements the hand-engineered feature vector used for
// semantic retrieval over journal entries. It is deliberately not a learned
// representation: a cheap, explainable, deterministic function whose exact
// feature layout is part of the retrieval contract.
package embedding

import (
	"crypto/sha256"
	"math"
	"sort"
	"strings"
	"unicode"
)

// Dimensions is the fixed width of every embedding vector.
const Dimensions = 100

// Feature layout. Indices 39-99 are reserved and stay zero; the layout must
// not be repurposed without invalidating every stored vector.
const (
	freqBuckets      = 30
	idxEmotion       = 30
	idxTime          = 31
	idxRelationship  = 32
	idxSentences     = 33
	idxParagraphs    = 34
	idxQuestions     = 35
	idxExclamations  = 36
	idxPositive      = 37
	idxNegative      = 38
	topWordLimit     = 30
	sentenceScale    = 100
	paragraphScale   = 50
	punctuationScale = 20
)

// Vectorize converts text into a unit-length 100-dimensional feature vector.
// It is pure and deterministic: the same text always yields the same vector.
// Empty input yields the all-zero vector.
func Vectorize(text string) []float32 {
	vec := make([]float32, Dimensions)

	words := tokenize(text)
	if len(words) == 0 {
		return vec
	}
	total := float64(len(words))

	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}

	// Frequency features: the top-30 words by count, each hashed into one of
	// 30 buckets. Hash collisions accumulate rather than overwrite.
	for _, w := range topWords(counts, topWordLimit) {
		bucket := hashBucket(w)
		vec[bucket] += float32(float64(counts[w]) / total)
	}

	// Category features over all tokens, not just the top-30.
	var emotion, timeCount, relationship, positive, negative int
	for _, w := range words {
		if _, ok := emotionWords[w]; ok {
			emotion++
		}
		if _, ok := timeWords[w]; ok {
			timeCount++
		}
		if _, ok := relationshipWords[w]; ok {
			relationship++
		}
		if _, ok := positiveWords[w]; ok {
			positive++
		}
		if _, ok := negativeWords[w]; ok {
			negative++
		}
	}
	vec[idxEmotion] = float32(float64(emotion) / total)
	vec[idxTime] = float32(float64(timeCount) / total)
	vec[idxRelationship] = float32(float64(relationship) / total)

	// Structural features are computed on the original, untokenized text.
	vec[idxSentences] = float32(float64(countSentences(text)) / sentenceScale)
	vec[idxParagraphs] = float32(float64(countParagraphs(text)) / paragraphScale)
	vec[idxQuestions] = float32(float64(strings.Count(text, "?")) / punctuationScale)
	vec[idxExclamations] = float32(float64(strings.Count(text, "!")) / punctuationScale)

	vec[idxPositive] = float32(float64(positive) / total)
	vec[idxNegative] = float32(float64(negative) / total)

	normalize(vec)
	return vec
}

// tokenize lowercases, strips punctuation to spaces, splits on whitespace and
// drops stop words.
func tokenize(text string) []string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	fields := strings.Fields(clean)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := stopWords[f]; ok {
			continue
		}
		words = append(words, f)
	}
	return words
}

// topWords returns up to limit words ordered by descending count, with an
// alphabetical tie-break so the selection is deterministic.
func topWords(counts map[string]int, limit int) []string {
	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > limit {
		words = words[:limit]
	}
	return words
}

// hashBucket maps a word onto one of the 30 frequency buckets using the first
// byte of its SHA-256 digest. The hash choice is part of the stored-vector
// contract.
func hashBucket(word string) int {
	sum := sha256.Sum256([]byte(word))
	return int(sum[0]) % freqBuckets
}

func countSentences(text string) int {
	count := 0
	for _, part := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

func countParagraphs(text string) int {
	count := 0
	for _, block := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count
}

// normalize scales vec to unit L2 length in place. A zero vector is left
// untouched so empty input never divides by zero.
func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}
