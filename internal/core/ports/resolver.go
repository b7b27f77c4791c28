package ports

import (
	"github.com/openlocale/translation-service/internal/core/domain/semkey"
)

// KeyResolver parses raw key strings into structured semantic keys and
// resolves fuzzy matches among candidates. All operations are pure and
// total: malformed input degrades to best-effort parsing, never an error.
type KeyResolver interface {
	Parse(raw string) semkey.SemanticKey
	Generate(intent, context string) string
	IsValidKey(raw string) bool
	FindBestMatch(candidates []semkey.SemanticKey, targetIntent, targetContext string) (semkey.SemanticKey, bool)
	ExtractIntents(raws []string) []string
	GroupByIntent(keys []semkey.SemanticKey) map[string][]semkey.SemanticKey
}
