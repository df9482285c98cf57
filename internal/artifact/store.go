// Package artifact holds analyzed artifacts in memory for the life of the process.
package artifact

import (
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aryannaik/tagging-api/internal/tagging"
)

// Store is an append-only, in-memory artifact registry. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries []Artifact
	byID    map[string]int
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		byID: make(map[string]int),
		now:  time.Now,
	}
}

// Create stores a new artifact with a fresh ID and UTC creation time.
// Tags are normalized: blank or unknown-category tags are dropped and each
// (category, value) pair is kept once.
func (s *Store) Create(typ Type, language string, tags []tagging.Tag) (Artifact, error) {
	if _, err := ParseType(string(typ)); err != nil {
		return Artifact{}, err
	}

	a := Artifact{
		ID:        uuid.NewString(),
		Type:      typ,
		Language:  language,
		Tags:      tagging.Normalize(tags),
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[a.ID] = len(s.entries)
	s.entries = append(s.entries, a)

	return copyOf(a), nil
}

// GetByID returns the artifact with the given ID. The bool is false if there is none.
func (s *Store) GetByID(id string) (Artifact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return Artifact{}, false
	}
	return copyOf(s.entries[i]), true
}

// List returns every artifact in insertion order.
func (s *Store) List() []Artifact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Artifact, len(s.entries))
	for i, a := range s.entries {
		out[i] = copyOf(a)
	}
	return out
}

// Count returns the number of stored artifacts.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

type summaryKey struct {
	category tagging.Category
	value    string
}

// SummarizeTags counts each distinct (category, value) pair over all artifacts.
// Results are ordered by count, then category, then value.
func (s *Store) SummarizeTags() []TagSummary {
	s.mu.RLock()
	counts := make(map[summaryKey]int)
	for _, a := range s.entries {
		for _, t := range a.Tags {
			counts[summaryKey{t.Category, t.Value}]++
		}
	}
	s.mu.RUnlock()

	summaries := make([]TagSummary, 0, len(counts))
	for k, n := range counts {
		summaries = append(summaries, TagSummary{Value: k.value, Category: k.category, Count: n})
	}

	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Value < b.Value
	})

	return summaries
}

func copyOf(a Artifact) Artifact {
	a.Tags = cloneTags(a.Tags)
	return a
}

func cloneTags(tags []tagging.Tag) []tagging.Tag {
	if tags == nil {
		return []tagging.Tag{}
	}
	return slices.Clone(tags)
}
