package semkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_CanonicalForm(t *testing.T) {
	r := NewResolver()

	key := r.Parse("intent:greeting+context:app_entry")
	assert.Equal(t, "greeting", key.Intent)
	assert.Equal(t, "app_entry", key.Context)
	assert.Equal(t, "intent:greeting+context:app_entry", key.Raw)
}

func TestParse_CanonicalWithoutContext(t *testing.T) {
	r := NewResolver()

	key := r.Parse("intent:farewell")
	assert.Equal(t, "farewell", key.Intent)
	assert.Equal(t, DefaultContext, key.Context)
}

func TestParse_CanonicalCaseInsensitive(t *testing.T) {
	r := NewResolver()

	key := r.Parse("INTENT:Greeting+CONTEXT:App_Entry")
	assert.Equal(t, "greeting", key.Intent)
	assert.Equal(t, "app_entry", key.Context)
}

func TestParse_FallbackSplitsOnFirstColon(t *testing.T) {
	r := NewResolver()

	key := r.Parse("greeting:app_entry")
	assert.Equal(t, "greeting", key.Intent)
	assert.Equal(t, "app_entry", key.Context)

	// Everything after the first separator belongs to the context
	key = r.Parse("a:b:c")
	assert.Equal(t, "a", key.Intent)
	assert.Equal(t, "b:c", key.Context)

	// A trailing separator degrades to the default context
	key = r.Parse("greeting:")
	assert.Equal(t, "greeting", key.Intent)
	assert.Equal(t, DefaultContext, key.Context)
}

func TestParse_NoSeparator(t *testing.T) {
	r := NewResolver()

	for _, raw := range []string{"greeting", "Farewell", "anything_at_all"} {
		key := r.Parse(raw)
		assert.Equal(t, DefaultContext, key.Context, "raw=%s", raw)
		assert.Equal(t, lower(raw), key.Intent, "raw=%s", raw)
		assert.Equal(t, raw, key.Raw, "raw=%s", raw)
	}
}

func lower(s string) string {
	out := []rune(s)
	for i, c := range out {
		if c >= 'A' && c <= 'Z' {
			out[i] = c + ('a' - 'A')
		}
	}
	return string(out)
}

func TestGenerate_RoundTrip(t *testing.T) {
	r := NewResolver()

	raw := r.Generate("greeting", "app_entry")
	assert.Equal(t, "intent:greeting+context:app_entry", raw)

	key := r.Parse(raw)
	assert.Equal(t, "greeting", key.Intent)
	assert.Equal(t, "app_entry", key.Context)
}

func TestGenerate_ContextHandling(t *testing.T) {
	r := NewResolver()

	// Only a missing context yields the short form; an explicit context is
	// kept verbatim, the default one included.
	assert.Equal(t, "intent:greeting", r.Generate("greeting", ""))
	assert.Equal(t, "intent:greeting+context:default", r.Generate("greeting", DefaultContext))

	key := r.Parse(r.Generate("greeting", DefaultContext))
	assert.Equal(t, "greeting", key.Intent)
	assert.Equal(t, DefaultContext, key.Context)
}

func TestIsValidKey(t *testing.T) {
	r := NewResolver()

	assert.True(t, r.IsValidKey("intent:greeting"))
	assert.True(t, r.IsValidKey("intent:greeting+context:app_entry"))
	// The fallback accepts anything containing a separator, on purpose
	assert.True(t, r.IsValidKey("whatever:else"))
	assert.False(t, r.IsValidKey("no_separator_here"))
	assert.False(t, r.IsValidKey(""))
}

func TestFindBestMatch_ExactPairWins(t *testing.T) {
	r := NewResolver()

	candidates := []SemanticKey{
		{Intent: "greeting", Context: "default"},
		{Intent: "greeting", Context: "app_entry"},
		{Intent: "farewell", Context: "app_entry"},
	}

	best, ok := r.FindBestMatch(candidates, "greeting", "app_entry")
	require.True(t, ok)
	// greeting/app_entry scores 15, greeting/default 11, farewell/app_entry 5
	assert.Equal(t, "greeting", best.Intent)
	assert.Equal(t, "app_entry", best.Context)
}

func TestFindBestMatch_IntentDominatesContext(t *testing.T) {
	r := NewResolver()

	// An exact-intent candidate with the wrong context must outrank a
	// wrong-intent candidate with the exact context.
	candidates := []SemanticKey{
		{Intent: "farewell", Context: "app_entry"},
		{Intent: "greeting", Context: "checkout"},
	}

	best, ok := r.FindBestMatch(candidates, "greeting", "app_entry")
	require.True(t, ok)
	assert.Equal(t, "greeting", best.Intent)
}

func TestFindBestMatch_RelatedContextScoresAboveDefault(t *testing.T) {
	r := NewResolver()

	candidates := []SemanticKey{
		{Intent: "greeting", Context: "default"},
		{Intent: "greeting", Context: "app_entry_banner"},
	}

	best, ok := r.FindBestMatch(candidates, "greeting", "app_entry")
	require.True(t, ok)
	// "app_entry" is a prefix of "app_entry_banner": related (+2) beats default (+1)
	assert.Equal(t, "app_entry_banner", best.Context)
}

func TestFindBestMatch_TiesResolveToFirstSeen(t *testing.T) {
	r := NewResolver()

	candidates := []SemanticKey{
		{Intent: "greeting", Context: "checkout", Raw: "first"},
		{Intent: "greeting", Context: "signup", Raw: "second"},
	}

	// Both score 10 (intent only); the first-seen candidate must win on
	// every call.
	for i := 0; i < 10; i++ {
		best, ok := r.FindBestMatch(candidates, "greeting", "app_entry")
		require.True(t, ok)
		assert.Equal(t, "first", best.Raw)
	}
}

func TestFindBestMatch_NoCandidateAboveZero(t *testing.T) {
	r := NewResolver()

	candidates := []SemanticKey{
		{Intent: "farewell", Context: "checkout"},
		{Intent: "welcome", Context: "signup"},
	}

	_, ok := r.FindBestMatch(candidates, "greeting", "app_entry")
	assert.False(t, ok)
}

func TestFindBestMatch_EmptyCandidates(t *testing.T) {
	r := NewResolver()

	_, ok := r.FindBestMatch(nil, "greeting", "app_entry")
	assert.False(t, ok)
}

func TestExtractIntents_Deduplicates(t *testing.T) {
	r := NewResolver()

	intents := r.ExtractIntents([]string{
		"intent:greeting+context:app_entry",
		"intent:greeting",
		"intent:farewell",
		"greeting",
	})
	assert.ElementsMatch(t, []string{"greeting", "farewell"}, intents)
}

func TestGroupByIntent_PreservesOrderWithinGroup(t *testing.T) {
	r := NewResolver()

	keys := []SemanticKey{
		{Intent: "greeting", Context: "default", Raw: "a"},
		{Intent: "farewell", Context: "default", Raw: "b"},
		{Intent: "greeting", Context: "app_entry", Raw: "c"},
	}

	groups := r.GroupByIntent(keys)
	require.Len(t, groups, 2)
	require.Len(t, groups["greeting"], 2)
	assert.Equal(t, "a", groups["greeting"][0].Raw)
	assert.Equal(t, "c", groups["greeting"][1].Raw)
	assert.Equal(t, "b", groups["farewell"][0].Raw)
}
