package textutil

import "sort"

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for token, count := range a.tokens {
		if other, ok := b.tokens[token]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// Match is a candidate ranked by Closest.
type Match struct {
	Text  string
	Score float64
}

// Closest ranks candidates by similarity to query and returns at most limit
// matches scoring at least minScore, best first. Ties keep candidate order.
func Closest(query string, candidates []string, limit int, minScore float64) []Match {
	if limit <= 0 {
		return nil
	}
	target := NewFingerprint(query)
	if target == nil {
		return nil
	}
	matches := make([]Match, 0, limit)
	for _, candidate := range candidates {
		score := CosineSimilarity(target, NewFingerprint(candidate))
		if score <= 0 || score < minScore {
			continue
		}
		matches = append(matches, Match{Text: candidate, Score: score})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
