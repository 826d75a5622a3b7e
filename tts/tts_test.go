package tts

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podforge/podforge/models"
)

// stubSynth returns the line text as the clip data, optionally after a
// per-text delay so completion order differs from dispatch order.
type stubSynth struct {
	delays map[string]time.Duration
	err    map[string]error
	calls  atomic.Int32
}

func (s *stubSynth) Synthesize(ctx context.Context, text, voice string) (*models.AudioClip, error) {
	s.calls.Add(1)
	if d, ok := s.delays[text]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := s.err[text]; ok {
		return nil, err
	}
	return &models.AudioClip{Format: "wav", Data: []byte(text + "|" + voice)}, nil
}

func testVoices() VoiceMap {
	return VoiceMap{
		models.SpeakerHost:  "host-voice",
		models.SpeakerGuest: "guest-voice",
	}
}

func alternatingScript(lines ...string) models.Script {
	script := make(models.Script, len(lines))
	for i, text := range lines {
		sp := models.SpeakerHost
		if i%2 == 1 {
			sp = models.SpeakerGuest
		}
		script[i] = models.ScriptLine{Speaker: sp, Text: text}
	}
	return script
}

func TestSynthesizeScriptPreservesLineOrderUnderConcurrency(t *testing.T) {
	script := alternatingScript("zero", "one", "two", "three", "four")
	// Completion order 3,1,4,0,2.
	synth := &stubSynth{delays: map[string]time.Duration{
		"three": 10 * time.Millisecond,
		"one":   20 * time.Millisecond,
		"four":  30 * time.Millisecond,
		"zero":  40 * time.Millisecond,
		"two":   50 * time.Millisecond,
	}}

	clips, err := SynthesizeScript(context.Background(), synth, script, testVoices(), 5)
	require.NoError(t, err)
	require.Len(t, clips, 5)
	for i, text := range []string{"zero", "one", "two", "three", "four"} {
		assert.Equal(t, i, clips[i].Index)
		assert.Equal(t, script[i].Speaker, clips[i].Speaker)
		voice := testVoices()[script[i].Speaker]
		assert.Equal(t, text+"|"+voice, string(clips[i].Data))
	}
}

func TestSynthesizeScriptFailsFastOnMissingVoice(t *testing.T) {
	script := alternatingScript("a", "b")
	synth := &stubSynth{}
	voices := VoiceMap{models.SpeakerHost: "host-voice"} // Guest missing

	_, err := SynthesizeScript(context.Background(), synth, script, voices, 2)
	assert.ErrorIs(t, err, models.ErrVoiceNotConfigured)
	assert.Equal(t, int32(0), synth.calls.Load(), "no provider call should go out")
}

func TestSynthesizeScriptFailsWholeJobOnLineError(t *testing.T) {
	script := alternatingScript("good", "bad", "also good")
	synth := &stubSynth{err: map[string]error{"bad": models.ErrTTSUnavailable}}

	_, err := SynthesizeScript(context.Background(), synth, script, testVoices(), 3)
	assert.ErrorIs(t, err, models.ErrTTSUnavailable)
}

func TestSynthesizeScriptHonorsCancellation(t *testing.T) {
	script := alternatingScript("slow")
	synth := &stubSynth{delays: map[string]time.Duration{"slow": time.Second}}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := SynthesizeScript(ctx, synth, script, testVoices(), 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
