package semkey

import (
	"regexp"
	"strings"
)

// DefaultContext is assumed when a key carries no context qualifier.
const DefaultContext = "default"

// canonicalPattern matches the canonical raw form "intent:<value>"
// optionally suffixed with "+context:<value>".
var canonicalPattern = regexp.MustCompile(`(?i)^intent:([a-z_]+)(?:\+context:([a-z_]+))?$`)

// SemanticKey identifies a translatable concept independent of language.
// It is a value type and is never mutated after parsing.
type SemanticKey struct {
	Intent  string `json:"intent"`
	Context string `json:"context"`
	Raw     string `json:"raw"`
}

// Scoring weights for fuzzy matching. An exact intent dominates any
// context contribution so topic correctness always outranks nuance.
const (
	intentExactScore    = 10
	contextExactScore   = 5
	contextRelatedScore = 2
	contextDefaultScore = 1
)

// Resolver converts raw key strings into SemanticKey values and resolves
// fuzzy matches among candidate keys. It is stateless and safe for
// concurrent use.
type Resolver struct{}

// NewResolver creates a new semantic key resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Parse derives a SemanticKey from a raw string. It never fails: strings
// that do not match the canonical form degrade to splitting on the first
// ":" separator, and strings without any separator become an intent with
// the default context.
func (r *Resolver) Parse(raw string) SemanticKey {
	if m := canonicalPattern.FindStringSubmatch(raw); m != nil {
		key := SemanticKey{Intent: strings.ToLower(m[1]), Context: DefaultContext, Raw: raw}
		if m[2] != "" {
			key.Context = strings.ToLower(m[2])
		}
		return key
	}

	if i := strings.Index(raw, ":"); i >= 0 {
		key := SemanticKey{Intent: strings.ToLower(raw[:i]), Context: DefaultContext, Raw: raw}
		if rest := strings.ToLower(raw[i+1:]); rest != "" {
			key.Context = rest
		}
		return key
	}

	return SemanticKey{Intent: strings.ToLower(raw), Context: DefaultContext, Raw: raw}
}

// Generate produces the canonical raw form for an intent and optional
// context. The context qualifier is dropped only when no context is given;
// an explicit context, the default one included, is kept verbatim.
func (r *Resolver) Generate(intent, context string) string {
	intent = strings.ToLower(intent)
	context = strings.ToLower(context)
	if context == "" {
		return "intent:" + intent
	}
	return "intent:" + intent + "+context:" + context
}

// IsValidKey reports whether raw matches the canonical pattern or contains
// at least one ":" separator, mirroring the fallback accepted by Parse.
// The permissiveness is intentional: callers that want stricter validation
// should match the canonical pattern themselves.
func (r *Resolver) IsValidKey(raw string) bool {
	return canonicalPattern.MatchString(raw) || strings.Contains(raw, ":")
}

// FindBestMatch scores every candidate against the target intent and
// context and returns the highest-scoring one. Candidates are scanned in
// order and the current best is replaced only on a strictly greater score,
// so ties resolve to the first-seen candidate and repeated calls are
// deterministic. ok is false when no candidate scores above zero.
func (r *Resolver) FindBestMatch(candidates []SemanticKey, targetIntent, targetContext string) (best SemanticKey, ok bool) {
	targetIntent = strings.ToLower(targetIntent)
	targetContext = strings.ToLower(targetContext)
	if targetContext == "" {
		targetContext = DefaultContext
	}

	bestScore := 0
	for _, c := range candidates {
		if s := score(c, targetIntent, targetContext); s > bestScore {
			best = c
			bestScore = s
		}
	}
	return best, bestScore > 0
}

// score computes the additive match score. The context terms are mutually
// exclusive: exact match, then the generic default context, then a
// relatedness check.
func score(c SemanticKey, targetIntent, targetContext string) int {
	s := 0
	if c.Intent == targetIntent {
		s += intentExactScore
	}
	switch {
	case c.Context == targetContext:
		s += contextExactScore
	case c.Context == DefaultContext:
		s += contextDefaultScore
	case relatedContexts(c.Context, targetContext):
		s += contextRelatedScore
	}
	return s
}

// relatedContexts reports whether one context contains the other as a
// substring. The symmetric containment check also covers the prefix case.
func relatedContexts(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// ExtractIntents returns the deduplicated intents across a batch of raw
// keys, in first-seen order.
func (r *Resolver) ExtractIntents(raws []string) []string {
	seen := make(map[string]struct{}, len(raws))
	intents := make([]string, 0, len(raws))
	for _, raw := range raws {
		intent := r.Parse(raw).Intent
		if _, ok := seen[intent]; ok {
			continue
		}
		seen[intent] = struct{}{}
		intents = append(intents, intent)
	}
	return intents
}

// GroupByIntent groups keys by intent, preserving input order within each
// group.
func (r *Resolver) GroupByIntent(keys []SemanticKey) map[string][]SemanticKey {
	groups := make(map[string][]SemanticKey)
	for _, k := range keys {
		groups[k.Intent] = append(groups[k.Intent], k)
	}
	return groups
}
