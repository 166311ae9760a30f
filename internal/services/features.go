package services

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// categoryVocabulary is the closed set of category words a short token can
// match to count as a tag.
var categoryVocabulary = map[string]struct{}{
	"food": {}, "travel": {}, "fashion": {}, "beauty": {}, "fitness": {},
	"art": {}, "music": {}, "photography": {}, "nature": {}, "pets": {},
	"technology": {}, "lifestyle": {}, "sports": {}, "cooking": {}, "diy": {},
	"crafts": {}, "gaming": {}, "books": {}, "movies": {}, "cars": {},
}

var nonWordOrSpace = regexp.MustCompile(`[^\w\s]`)

// ExtractFeatures derives the normalized tag set of a caption: lowercase,
// strip punctuation, split on whitespace, keep tokens longer than two runes
// that match the category vocabulary, start with '#', or exceed four runes.
// Duplicates are removed, first-seen order preserved. Pure function.
func ExtractFeatures(caption string) []string {
	text := cases.Lower(language.Und).String(caption)
	text = nonWordOrSpace.ReplaceAllString(text, "")

	seen := make(map[string]struct{})
	var tags []string
	for _, word := range strings.Fields(text) {
		if len(word) <= 2 {
			continue
		}
		if _, isCategory := categoryVocabulary[word]; !isCategory &&
			!strings.HasPrefix(word, "#") && len(word) <= 4 {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		tags = append(tags, word)
	}
	return tags
}

// ContentSimilarity is the Jaccard ratio of two captions' feature sets:
// |intersection| / |union|, and 0 when both sets are empty.
func ContentSimilarity(captionA, captionB string) float64 {
	featuresA := ExtractFeatures(captionA)
	featuresB := ExtractFeatures(captionB)

	if len(featuresA) == 0 && len(featuresB) == 0 {
		return 0
	}

	setB := make(map[string]struct{}, len(featuresB))
	for _, f := range featuresB {
		setB[f] = struct{}{}
	}

	union := make(map[string]struct{}, len(featuresA)+len(featuresB))
	intersection := 0
	for _, f := range featuresA {
		if _, ok := setB[f]; ok {
			intersection++
		}
		union[f] = struct{}{}
	}
	for _, f := range featuresB {
		union[f] = struct{}{}
	}

	return float64(intersection) / float64(len(union))
}
