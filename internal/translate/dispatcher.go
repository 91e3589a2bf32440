package translate

import (
	"regexp"
	"strings"
)

// pattern ties one query shape to its compiled text pattern and the
// translator that consumes the captured fragments.
type pattern struct {
	kind  Kind
	re    *regexp.Regexp
	build func(groups []string) Query
}

// Translator dispatches input text across the six query shapes in a fixed
// priority order and hands the captured fragments to the matching
// translator. It is immutable after construction and safe for concurrent
// use.
type Translator struct {
	patterns []pattern
}

// defaultLimit applies when a query carries no usable limit of its own.
const defaultLimit = 10

// NewTranslator compiles the dispatch patterns. The slice order is the
// priority order: ranking, temporal, filter, count, comparison, aggregation.
// A query matching two shapes always resolves to the earlier one.
func NewTranslator() *Translator {
	return &Translator{patterns: []pattern{
		{
			kind:  KindRanking,
			re:    regexp.MustCompile(`show me (?:the )?(top|bottom) (\d+) (.+?) by (.+)`),
			build: translateRanking,
		},
		{
			kind:  KindTemporal,
			re:    regexp.MustCompile(`what (?:were|was) (?:the )?(.+) (?:last|this|past) (.+)`),
			build: translateTemporal,
		},
		{
			kind:  KindFilter,
			re:    regexp.MustCompile(`list (.+) with (.+?) (below|under|above|over|equals to?) (.+)`),
			build: translateFilter,
		},
		{
			kind:  KindCount,
			re:    regexp.MustCompile(`how many (.+) (?:were|was) there (?:last|this|past) (.+)`),
			build: translateCount,
		},
		{
			kind:  KindComparison,
			re:    regexp.MustCompile(`compare (.+) and (.+) by (.+)`),
			build: translateComparison,
		},
		{
			kind:  KindAggregation,
			re:    regexp.MustCompile(`what is the average (.+) for (.+)`),
			build: translateAggregation,
		},
	}}
}

// Translate rewrites the input text to a structured query. Inputs matching
// no shape resolve to the fallback query rather than an error; failure to
// classify is an expected outcome, not an exceptional one.
func (t *Translator) Translate(text string) Query {
	normalized := normalize(text)

	for _, p := range t.patterns {
		if m := p.re.FindStringSubmatch(normalized); m != nil {
			return p.build(m[1:])
		}
	}

	return fallbackQuery(normalized)
}

// Match reports which shape the text would dispatch to, without translating.
// The validator uses this for its pre-flight pattern check.
func (t *Translator) Match(text string) (Kind, bool) {
	normalized := normalize(text)

	for _, p := range t.patterns {
		if p.re.MatchString(normalized) {
			return p.kind, true
		}
	}

	return "", false
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// fallbackQuery is the documented no-match result: a wildcard selection
// keyed by the raw text with the default limit.
func fallbackQuery(text string) Query {
	return Query{
		Kind:      KindFallback,
		Table:     "data",
		Column:    Wildcard,
		Predicate: Predicate{Kind: PredText, Text: text},
		Limit:     defaultLimit,
	}
}
