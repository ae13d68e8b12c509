package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/telex-tui/telex-server/internal/core"
)

func TestCensorMasksBannedWords(t *testing.T) {
	mod, err := New([]string{"spam", "scam"}, '*')
	require.NoError(t, err)

	out, hits := mod.Censor("this is spam, total scam")
	require.Equal(t, 2, hits)
	require.Equal(t, "this is ****, total ****", out)
}

func TestCensorHandlesLeetAndPadding(t *testing.T) {
	mod, err := New([]string{"spam"}, '*')
	require.NoError(t, err)

	out, hits := mod.Censor("buy sp4m here")
	require.Equal(t, 1, hits)
	require.Equal(t, "buy **** here", out)

	out, hits = mod.Censor("s p a m")
	require.Equal(t, 1, hits)
	require.Equal(t, "*******", out)
}

func TestCensorLeavesCleanTextAlone(t *testing.T) {
	mod, err := New([]string{"spam"}, '*')
	require.NoError(t, err)

	out, hits := mod.Censor("perfectly fine message")
	require.Zero(t, hits)
	require.Equal(t, "perfectly fine message", out)
}

func TestCensorIsCaseInsensitive(t *testing.T) {
	mod, err := New([]string{"spam"}, '*')
	require.NoError(t, err)

	out, hits := mod.Censor("SPAM")
	require.Equal(t, 1, hits)
	require.Equal(t, "****", out)
}

func TestNewRejectsEmptyWordList(t *testing.T) {
	_, err := New(nil, '*')
	require.Error(t, err)

	_, err = New([]string{"  ", "!!"}, '*')
	require.Error(t, err)
}

func TestNewSkipsWordsWithoutLettersOrDigits(t *testing.T) {
	mod, err := New([]string{"spam", "!!"}, '*')
	require.NoError(t, err)

	// "!!" must not become the pattern "ii" via the leet mapping.
	out, hits := mod.Censor("radii")
	require.Zero(t, hits)
	require.Equal(t, "radii", out)
}

func TestFilterModifiesOnlyOnHit(t *testing.T) {
	mod, err := New([]string{"spam"}, '*')
	require.NoError(t, err)
	filter := mod.Filter()

	action := filter("alice", "hello")
	require.Equal(t, core.FilterAllow, action.Verdict)

	action = filter("alice", "hello spam")
	require.Equal(t, core.FilterModify, action.Verdict)
	require.Equal(t, "hello ****", action.Body)
}
