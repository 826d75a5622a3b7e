package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podforge/podforge/models"
)

func TestParseScriptAttributesAllPrefixedLines(t *testing.T) {
	raw := `Host: Welcome to the show.
Guest: Thanks for having me.
Host: Let's dive right in.
Guest: Absolutely.
Host: First question.`

	script, err := ParseScript(raw, false)
	require.NoError(t, err)
	require.Len(t, script, 5)

	want := []models.Speaker{
		models.SpeakerHost, models.SpeakerGuest, models.SpeakerHost,
		models.SpeakerGuest, models.SpeakerHost,
	}
	for i, sp := range want {
		assert.Equal(t, sp, script[i].Speaker, "line %d", i)
	}
	assert.Equal(t, "Welcome to the show.", script[0].Text)
	assert.Equal(t, "First question.", script[4].Text)
}

func TestParseScriptPreservesOrder(t *testing.T) {
	raw := "Guest: one\nGuest: two\nHost: three\nGuest: four"
	script, err := ParseScript(raw, false)
	require.NoError(t, err)
	require.Len(t, script, 4)
	assert.Equal(t, "one", script[0].Text)
	assert.Equal(t, "two", script[1].Text)
	assert.Equal(t, "three", script[2].Text)
	assert.Equal(t, "four", script[3].Text)
}

func TestParseScriptAppendsUnprefixedToPreviousTurn(t *testing.T) {
	raw := `Host: This is a long thought
that wraps onto a second line.
Guest: Understood.`

	script, err := ParseScript(raw, false)
	require.NoError(t, err)
	require.Len(t, script, 2)
	assert.Equal(t, "This is a long thought that wraps onto a second line.", script[0].Text)
	assert.Equal(t, "Understood.", script[1].Text)
}

func TestParseScriptDropPolicyDiscardsUnprefixedLines(t *testing.T) {
	raw := `Host: First turn.
stray continuation
Guest: Second turn.`

	script, err := ParseScript(raw, true)
	require.NoError(t, err)
	require.Len(t, script, 2)
	assert.Equal(t, "First turn.", script[0].Text)
}

func TestParseScriptDropsPreambleBeforeFirstMarker(t *testing.T) {
	raw := `Here is your podcast script:

Host: Hello everyone.
Guest: Hi.`

	script, err := ParseScript(raw, false)
	require.NoError(t, err)
	require.Len(t, script, 2)
	assert.Equal(t, models.SpeakerHost, script[0].Speaker)
}

func TestParseScriptHandlesMarkdownDecoratedMarkers(t *testing.T) {
	raw := "**Host:** Hello.\n**Guest:** Hi there."
	script, err := ParseScript(raw, false)
	require.NoError(t, err)
	require.Len(t, script, 2)
	assert.Equal(t, "Hello.", script[0].Text)
	assert.Equal(t, "Hi there.", script[1].Text)
}

func TestParseScriptIsCaseInsensitive(t *testing.T) {
	raw := "HOST: loud intro\nguest: quiet reply"
	script, err := ParseScript(raw, false)
	require.NoError(t, err)
	require.Len(t, script, 2)
	assert.Equal(t, models.SpeakerHost, script[0].Speaker)
	assert.Equal(t, models.SpeakerGuest, script[1].Speaker)
}

func TestParseScriptFailsWithoutAnyMarkers(t *testing.T) {
	raw := "Just a wall of prose with no speakers at all.\nStill nothing."
	_, err := ParseScript(raw, false)
	assert.ErrorIs(t, err, models.ErrScriptParse)
}

func TestParseScriptSingleRoleStillParses(t *testing.T) {
	raw := "Host: monologue one\nHost: monologue two"
	script, err := ParseScript(raw, false)
	require.NoError(t, err)
	assert.Len(t, script, 2)
	assert.False(t, script.HasSpeaker(models.SpeakerGuest))
}
