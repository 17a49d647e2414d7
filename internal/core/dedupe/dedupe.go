package dedupe

import (
	"errors"

	"github.com/agenthands/resolve/internal/core/model"
	"github.com/agenthands/resolve/internal/core/rules"
	"github.com/agenthands/resolve/internal/core/similarity"
)

var ErrEmptyMergeInput = errors.New("cannot merge an empty candidate list")

const (
	DefaultThreshold = 0.8

	pairNameWeight     = 0.7
	pairPropertyWeight = 0.3
)

// Deduplicator finds duplicate clusters in a candidate list and merges each
// cluster to one canonical candidate.
type Deduplicator struct {
	Threshold float64
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{Threshold: DefaultThreshold}
}

// FindDuplicates runs a greedy single-pass pairwise comparison: each
// candidate joins at most one cluster, the first-seen one. This is not a
// transitive-closure clustering; when A~B and B~C but A and C fall below the
// threshold, membership depends on iteration order. Known limitation, kept
// for speed. Singleton clusters are dropped. A non-positive threshold falls
// back to the configured default.
func (d *Deduplicator) FindDuplicates(candidates []model.EntityCandidate, threshold float64) [][]model.EntityCandidate {
	if threshold <= 0 {
		threshold = d.Threshold
	}

	assigned := make([]bool, len(candidates))
	var clusters [][]model.EntityCandidate

	for i := 0; i < len(candidates); i++ {
		if assigned[i] {
			continue
		}
		cluster := []model.EntityCandidate{candidates[i]}
		assigned[i] = true

		for j := i + 1; j < len(candidates); j++ {
			if assigned[j] {
				continue
			}
			if PairSimilarity(candidates[i], candidates[j]) >= threshold {
				cluster = append(cluster, candidates[j])
				assigned[j] = true
			}
		}

		if len(cluster) > 1 {
			clusters = append(clusters, cluster)
		}
	}

	return clusters
}

// PairSimilarity scores two candidates as 0.7 name similarity plus 0.3
// property overlap. The overlap ratio divides by properties shared by both
// candidates, not by the union; when the candidates share no property keys
// there is no property evidence either way and the name similarity stands
// alone.
func PairSimilarity(a, b model.EntityCandidate) float64 {
	name := similarity.NameScore(a.Name, b.Name)
	overlap, ok := sharedPropertyOverlap(a, b)
	if !ok {
		return name
	}
	return pairNameWeight*name + pairPropertyWeight*overlap
}

func sharedPropertyOverlap(a, b model.EntityCandidate) (float64, bool) {
	shared := 0
	matched := 0
	for _, key := range model.SortedKeys(a.Properties) {
		bv, ok := b.Properties[key]
		if !ok {
			continue
		}
		shared++
		if a.Properties[key].EqualFold(bv) {
			matched++
		}
	}
	if shared == 0 {
		return 0.0, false
	}
	return float64(matched) / float64(shared), true
}

// MergeEntities folds a cluster left-to-right into the first candidate.
// Properties merge key-by-key through the conflict policy, the name is
// replaced only when the merge strategy says so, similarity becomes the
// cluster maximum and context maps union with later entries winning.
// Merging a singleton is the identity; merging nothing is a programming
// error.
func (d *Deduplicator) MergeEntities(candidates []model.EntityCandidate) (model.EntityCandidate, error) {
	if len(candidates) == 0 {
		return model.EntityCandidate{}, ErrEmptyMergeInput
	}

	merged := candidates[0]
	merged.Properties = cloneProperties(candidates[0].Properties)
	merged.Context = cloneProperties(candidates[0].Context)

	for _, next := range candidates[1:] {
		strategy := rules.DetermineMergeStrategy(merged, next)

		for _, key := range model.SortedKeys(next.Properties) {
			nv := next.Properties[key]
			if mv, ok := merged.Properties[key]; ok {
				merged.Properties[key] = rules.ResolvePropertyConflict(key, mv, nv)
			} else {
				merged.Properties[key] = nv
			}
		}

		switch strategy {
		case rules.PreserveLatest:
			merged.Name = next.Name
		case rules.PreserveMostComplete:
			if len(next.Name) > len(merged.Name) {
				merged.Name = next.Name
			}
		}

		if next.Similarity > merged.Similarity {
			merged.Similarity = next.Similarity
		}

		for _, key := range model.SortedKeys(next.Context) {
			merged.Context[key] = next.Context[key]
		}
	}

	return merged, nil
}

func cloneProperties(props model.Properties) model.Properties {
	out := make(model.Properties, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
