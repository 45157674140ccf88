package modify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInjector(t *testing.T) *Injector {
	t.Helper()
	in, err := Load()
	require.NoError(t, err)
	return in
}

func TestLoadTriggers(t *testing.T) {
	in := newInjector(t)

	triggers := in.Triggers()
	require.Len(t, triggers, 3)
	assert.Equal(t, "add auth", triggers[0].Keyword)
	assert.Equal(t, "add logging", triggers[1].Keyword)
	assert.Equal(t, "add docs", triggers[2].Keyword)
}

func TestApplyAddAuth(t *testing.T) {
	in := newInjector(t)

	got := in.Apply("print('hi')", []string{"add auth"})
	assert.Equal(t, "print('hi')\n# AUTH ADDED: JWT middleware", got)
}

func TestApplyCaseInsensitive(t *testing.T) {
	in := newInjector(t)

	got := in.Apply("code", []string{"Please ADD AUTH to this service"})
	assert.Contains(t, got, "# AUTH ADDED: JWT middleware")
}

func TestApplyUnknownKeywordIsNoop(t *testing.T) {
	in := newInjector(t)

	got := in.Apply("code", []string{"make it faster", "rewrite in cobol"})
	assert.Equal(t, "code", got)
}

func TestApplyFollowsCallerOrder(t *testing.T) {
	in := newInjector(t)

	got := in.Apply("code", []string{"add docs", "add auth"})
	docs := strings.Index(got, "# DOCS ADDED")
	auth := strings.Index(got, "# AUTH ADDED")
	require.GreaterOrEqual(t, docs, 0)
	require.GreaterOrEqual(t, auth, 0)
	assert.Less(t, docs, auth)
}

func TestApplyAppendsOncePerTrigger(t *testing.T) {
	in := newInjector(t)

	got := in.Apply("code", []string{"add auth", "add auth", "also add auth"})
	assert.Equal(t, 1, strings.Count(got, "# AUTH ADDED"))
}

func TestApplyOneKeywordCanHitSeveralTriggers(t *testing.T) {
	in := newInjector(t)

	got := in.Apply("code", []string{"add auth and add logging"})
	assert.Contains(t, got, "# AUTH ADDED")
	assert.Contains(t, got, "# LOGGING ADDED")
}

func TestApplyEmptyModifications(t *testing.T) {
	in := newInjector(t)

	assert.Equal(t, "code", in.Apply("code", nil))
	assert.Equal(t, "code", in.Apply("code", []string{}))
}
