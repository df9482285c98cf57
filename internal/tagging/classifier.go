// Package tagging derives category tags from free text or image labels by
// keyword matching against fixed vocabularies.
package tagging

import "strings"

// ClassifyText tags every vocabulary keyword found anywhere in text.
// Matching is plain substring containment on the lowercased text, so a
// keyword inside a longer word ("concatenate") still counts.
func ClassifyText(text string) []Tag {
	lower := strings.ToLower(text)

	tags := make([]Tag, 0)
	for _, v := range vocabularies {
		for _, kw := range v.Keywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			tag, err := NewTag(v.Category, kw)
			if err != nil {
				continue
			}
			tags = append(tags, tag)
		}
	}
	return dedupe(tags)
}

// ClassifyLabels tags each label with the first vocabulary that contains
// its lowercased form exactly, or CategoryOther when none does.
//
// Unlike ClassifyText the emitted value is the label as given (trimmed,
// original casing), so "Cat" becomes {animal, "Cat"}. Blank labels are skipped.
func ClassifyLabels(labels []string) []Tag {
	tags := make([]Tag, 0, len(labels))
	for _, label := range labels {
		tag, err := NewTag(categoryOf(label), label)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	return dedupe(tags)
}

func categoryOf(label string) Category {
	lower := strings.ToLower(strings.TrimSpace(label))
	for _, v := range vocabularies {
		if v.Contains(lower) {
			return v.Category
		}
	}
	return CategoryOther
}
