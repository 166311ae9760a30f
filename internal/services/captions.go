package services

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lumeo-app/lumeo/internal/config"
	"github.com/lumeo-app/lumeo/pkg/models"
)

// BuildChains builds the second- and third-order word transition tables from
// a snapshot of historical captions. Counts accumulate across all captions
// into shared tables; the result is deterministic for a given input.
func BuildChains(captions []string) models.CaptionModel {
	model := models.NewCaptionModel()

	for _, caption := range captions {
		words := strings.Fields(cases.Lower(language.Und).String(caption))

		for i := 0; i+2 < len(words); i++ {
			secondKey := words[i] + " " + words[i+1]
			model.Second.Add(secondKey, words[i+2])

			if i+3 < len(words) {
				thirdKey := strings.Join(words[i:i+3], " ")
				model.Third.Add(thirdKey, words[i+3])
			}
		}
	}

	return model
}

// Generate continues the seed phrase by weighted random sampling from the
// transition tables. Each step keys the third-order table with the last three
// words, falling back to the second-order table with the last two; generation
// stops when neither table knows the key, when maxWords is reached, or right
// after a word ending in '.'. The random source is injected so callers can
// make generation deterministic.
//
// Candidate words are enumerated in lexicographic order during the sampling
// walk. With a uniform source the draw distribution is unchanged; with a
// fixed source the output is reproducible.
func Generate(model models.CaptionModel, seedWords []string, maxWords int, random func() float64) string {
	words := append([]string(nil), seedWords...)

	for len(words) < maxWords {
		var candidates map[string]int
		if len(words) >= 3 {
			candidates = model.Third[strings.Join(words[len(words)-3:], " ")]
		}
		if candidates == nil && len(words) >= 2 {
			candidates = model.Second[strings.Join(words[len(words)-2:], " ")]
		}
		if len(candidates) == 0 {
			break
		}

		next := sampleWeighted(candidates, random)
		if next == "" {
			break
		}

		words = append(words, next)
		if strings.HasSuffix(next, ".") {
			break
		}
	}

	return strings.Join(words, " ")
}

func sampleWeighted(candidates map[string]int, random func() float64) string {
	total := 0
	keys := make([]string, 0, len(candidates))
	for word, count := range candidates {
		total += count
		keys = append(keys, word)
	}
	sort.Strings(keys)

	r := random() * float64(total)
	for _, word := range keys {
		r -= float64(candidates[word])
		if r <= 0 {
			return word
		}
	}
	return ""
}

// CaptionService serves caption suggestions over a chain model built from the
// current caption corpus. The model is a per-session snapshot: rebuilt lazily
// once the configured TTL passes, immutable in between.
type CaptionService struct {
	posts  PostStore
	config *config.CaptionConfig
	logger *logrus.Logger
	random func() float64

	mu      sync.Mutex
	model   models.CaptionModel
	builtAt time.Time
}

func NewCaptionService(posts PostStore, cfg *config.CaptionConfig, logger *logrus.Logger) *CaptionService {
	return &CaptionService{
		posts:  posts,
		config: cfg,
		logger: logger,
		random: rand.Float64,
	}
}

// Suggest completes a typed caption prefix. The seed is the prefix's first
// three words when the third-order table knows them, else its first two words
// against the second-order table, else no suggestion is made. Corpus read
// failures yield an empty suggestion, never an error.
func (s *CaptionService) Suggest(ctx context.Context, prefix string, maxWords int) string {
	model := s.snapshot(ctx)

	words := strings.Fields(cases.Lower(language.Und).String(prefix))

	var seed []string
	switch {
	case len(words) >= 3 && model.Third[strings.Join(words[:3], " ")] != nil:
		seed = words[:3]
	case len(words) >= 2 && model.Second[strings.Join(words[:2], " ")] != nil:
		seed = words[:2]
	default:
		return ""
	}

	if maxWords <= 0 {
		maxWords = s.config.MaxWords
	}

	return Generate(model, seed, maxWords, s.random)
}

func (s *CaptionService) snapshot(ctx context.Context) models.CaptionModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.builtAt.IsZero() && time.Since(s.builtAt) < s.config.ModelTTL {
		return s.model
	}

	captions, err := s.posts.AllCaptions(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load caption corpus")
		if s.builtAt.IsZero() {
			return models.NewCaptionModel()
		}
		return s.model // stale model beats none
	}

	s.model = BuildChains(captions)
	s.builtAt = time.Now()
	s.logger.WithFields(logrus.Fields{
		"captions":    len(captions),
		"second_keys": len(s.model.Second),
		"third_keys":  len(s.model.Third),
	}).Debug("Caption chain model rebuilt")

	return s.model
}
