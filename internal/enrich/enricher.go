// Package enrich decides when a scheduling reply would benefit from the
// user's documents and appends the most relevant excerpts.
package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/DurishettyAnirudh/memora/internal/docs"
	"github.com/DurishettyAnirudh/memora/internal/intent"
)

// Searcher is the document lookup the enricher needs.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]docs.Hit, error)
}

const (
	// maxExcerpts caps how many document excerpts are appended.
	maxExcerpts = 2
	// minScore drops excerpts that are only weakly related.
	minScore = 0.35
)

// planningPhrases gate enrichment on scheduling operations: document
// context only helps when the user is planning, not when they fire a
// plain command.
var planningPhrases = []string{
	"what should i",
	"help me plan",
	"suggest",
	"recommend",
	"available",
	"free time",
	"schedule around",
	"conflict with",
	"project deadline",
	"meeting about",
	"work on",
}

// informationalPhrases gate enrichment on chat: only questions that
// plausibly reference stored documents get excerpts appended.
var informationalPhrases = []string{
	"my notes",
	"my document",
	"what do my",
	"according to",
	"remind me what",
	"wrote down",
}

// schedulingKinds are the operations where planning-phrase enrichment
// applies.
var schedulingKinds = map[intent.Kind]bool{
	intent.KindCreate:     true,
	intent.KindCreateBulk: true,
	intent.KindList:       true,
	intent.KindListDate:   true,
	intent.KindMove:       true,
	intent.KindUpdate:     true,
	intent.KindPostpone:   true,
}

// Enricher appends document excerpts to replies.
type Enricher struct {
	index Searcher
}

// New creates an Enricher over the given document index.
func New(index Searcher) *Enricher {
	return &Enricher{index: index}
}

// ShouldEnrich reports whether the operation and phrasing warrant
// document context.
func (e *Enricher) ShouldEnrich(kind intent.Kind, utterance string) bool {
	lower := strings.ToLower(utterance)

	if kind == intent.KindChat {
		return containsAny(lower, informationalPhrases)
	}
	if schedulingKinds[kind] {
		return containsAny(lower, planningPhrases)
	}
	return false
}

// Enrich retrieves excerpts for the utterance and renders them as an
// addendum. Returns empty on any failure; enrichment never breaks a
// reply.
func (e *Enricher) Enrich(ctx context.Context, utterance string) string {
	terms := extractSearchTerms(utterance)
	if terms == "" {
		return ""
	}

	hits, err := e.index.Search(ctx, terms, maxExcerpts)
	if err != nil {
		return ""
	}

	var kept []docs.Hit
	for _, h := range hits {
		if h.Score >= minScore {
			kept = append(kept, h)
		}
	}
	if len(kept) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("📚 Related information from your documents:\n")
	for _, h := range kept {
		fmt.Fprintf(&b, "🔍 %s: %s\n", h.Title, h.Snippet)
	}
	return strings.TrimRight(b.String(), "\n")
}

// stopwords are dropped when distilling an utterance into search terms.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "i": true, "my": true, "me": true,
	"to": true, "for": true, "of": true, "on": true, "at": true, "in": true,
	"is": true, "am": true, "are": true, "do": true, "does": true,
	"what": true, "when": true, "should": true, "can": true, "you": true,
	"please": true, "help": true, "with": true, "and": true, "about": true,
}

// extractSearchTerms keeps the content words of the utterance.
func extractSearchTerms(utterance string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '?', '!', '.', ',', ';', ':', '\'', '"':
			return -1
		}
		return r
	}, strings.ToLower(utterance))

	var terms []string
	for _, word := range strings.Fields(cleaned) {
		if !stopwords[word] {
			terms = append(terms, word)
		}
	}
	if len(terms) == 0 {
		return strings.TrimSpace(utterance)
	}
	return strings.Join(terms, " ")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
