package tagging

import "slices"

// Vocabulary is the fixed keyword set for one category. Keywords are lowercase.
type Vocabulary struct {
	Category Category
	Keywords []string
}

// Contains reports whether word is exactly one of the keywords.
func (v Vocabulary) Contains(word string) bool {
	_, found := slices.BinarySearch(v.Keywords, word)
	return found
}

// vocabularies are listed in lookup priority order. Keywords are kept sorted.
var vocabularies = []Vocabulary{
	{CategoryAnimal, []string{"bird", "cat", "dog", "fish", "lion", "tiger"}},
	{CategoryLocation, []string{"beach", "city", "desert", "forest", "mountain", "park", "river"}},
	{CategoryColor, []string{"black", "blue", "green", "orange", "purple", "red", "white", "yellow"}},
	{CategoryGenre, []string{"classical", "country", "hip hop", "jazz", "pop", "rock"}},
	{CategoryTopic, []string{"health", "music", "politics", "sports", "technology", "travel"}},
	{CategoryTimeOfDay, []string{"afternoon", "evening", "morning", "night"}},
}

// Vocabularies returns a copy of the vocabulary tables in priority order.
func Vocabularies() []Vocabulary {
	out := make([]Vocabulary, len(vocabularies))
	for i, v := range vocabularies {
		out[i] = Vocabulary{Category: v.Category, Keywords: slices.Clone(v.Keywords)}
	}
	return out
}
