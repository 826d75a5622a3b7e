package audio

import (
	"os"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podforge/podforge/models"
)

const testRate = 24000

func silentClip(t *testing.T, ms, rate int) models.AudioClip {
	t.Helper()
	data, err := EncodeWAV(Silence(ms, rate), rate)
	require.NoError(t, err)
	return models.AudioClip{Format: "wav", Data: data}
}

func TestAssembleNoGapDurationIsSumOfClips(t *testing.T) {
	a := &Assembler{Dir: t.TempDir()}
	clips := []models.AudioClip{
		silentClip(t, 1000, testRate),
		silentClip(t, 500, testRate),
		silentClip(t, 250, testRate),
	}

	podcast, err := a.Assemble(clips, 0, "nogap")
	require.NoError(t, err)
	assert.Equal(t, 1750*time.Millisecond, podcast.Duration)

	_, err = os.Stat(podcast.Path)
	assert.NoError(t, err)
}

func TestAssembleInsertsGapBetweenConsecutiveClips(t *testing.T) {
	a := &Assembler{Dir: t.TempDir()}
	clips := []models.AudioClip{
		silentClip(t, 1000, testRate),
		silentClip(t, 1000, testRate),
		silentClip(t, 1000, testRate),
		silentClip(t, 1000, testRate),
	}

	// 4 clips, 3 gaps of 300ms.
	podcast, err := a.Assemble(clips, 300, "gapped")
	require.NoError(t, err)
	assert.Equal(t, 4900*time.Millisecond, podcast.Duration)
}

func TestAssembleSingleClipGetsNoGap(t *testing.T) {
	a := &Assembler{Dir: t.TempDir()}
	podcast, err := a.Assemble([]models.AudioClip{silentClip(t, 800, testRate)}, 300, "single")
	require.NoError(t, err)
	assert.Equal(t, 800*time.Millisecond, podcast.Duration)
}

func TestAssembleEmptyClipSequenceFails(t *testing.T) {
	a := &Assembler{Dir: t.TempDir()}
	_, err := a.Assemble(nil, 0, "empty")
	assert.ErrorIs(t, err, models.ErrAssembly)
}

func TestAssembleUndecodableClipFails(t *testing.T) {
	a := &Assembler{Dir: t.TempDir()}
	clips := []models.AudioClip{
		silentClip(t, 100, testRate),
		{Format: "wav", Data: []byte("not audio at all")},
	}
	_, err := a.Assemble(clips, 0, "garbage")
	assert.ErrorIs(t, err, models.ErrAssembly)
}

func TestAssembleMismatchedSampleRatesFail(t *testing.T) {
	a := &Assembler{Dir: t.TempDir()}
	clips := []models.AudioClip{
		silentClip(t, 100, 24000),
		silentClip(t, 100, 16000),
	}
	_, err := a.Assemble(clips, 0, "mismatch")
	assert.ErrorIs(t, err, models.ErrAssembly)
}

func TestAssembleRejectsUnknownFormat(t *testing.T) {
	a := &Assembler{Dir: t.TempDir()}
	_, err := a.Assemble([]models.AudioClip{{Format: "ogg", Data: []byte{1}}}, 0, "ogg")
	assert.ErrorIs(t, err, models.ErrAssembly)
}

func TestClipDuration(t *testing.T) {
	clip := silentClip(t, 1000, testRate)
	d, err := ClipDuration(clip)
	require.NoError(t, err)
	assert.Equal(t, time.Second, d)
}

func TestDecodeWAVDownmixesStereo(t *testing.T) {
	// Build a stereo fixture directly with the wav encoder.
	var buf writeSeekBuffer
	enc := wav.NewEncoder(&buf, testRate, bitDepth, 2, 1)
	samples := make([]int, testRate) // 500ms of interleaved stereo
	require.NoError(t, enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: testRate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}))
	require.NoError(t, enc.Close())

	p, err := decodeWAV(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, testRate, p.rate)
	assert.Equal(t, testRate/2, len(p.samples))
	assert.Equal(t, 500*time.Millisecond, p.duration())
}

func TestSilenceSampleCount(t *testing.T) {
	assert.Len(t, Silence(300, testRate), testRate*300/1000)
	assert.Empty(t, Silence(0, testRate))
}
