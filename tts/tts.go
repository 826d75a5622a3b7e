// Package tts synthesizes script lines into audio clips.
package tts

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/podforge/podforge/models"
)

// VoiceMap assigns a provider voice to each conversational role.
type VoiceMap map[models.Speaker]string

// Synthesizer converts one piece of text into an audio clip. Concrete
// implementations wrap a TTS provider.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) (*models.AudioClip, error)
}

// SynthesizeScript synthesizes every line of the script with at most
// concurrency in-flight provider calls. Clips come back in line-index order
// regardless of completion order. Any line failure cancels the rest and
// fails the whole job; a podcast with a missing turn is not worth keeping.
func SynthesizeScript(ctx context.Context, synth Synthesizer, script models.Script, voices VoiceMap, concurrency int) ([]models.AudioClip, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	// Every speaker needs a voice before any network call goes out.
	for _, line := range script {
		if _, ok := voices[line.Speaker]; !ok {
			return nil, fmt.Errorf("%w: %s", models.ErrVoiceNotConfigured, line.Speaker)
		}
	}

	clips := make([]models.AudioClip, len(script))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, line := range script {
		i, line := i, line
		g.Go(func() error {
			clip, err := synth.Synthesize(ctx, line.Text, voices[line.Speaker])
			if err != nil {
				return fmt.Errorf("line %d (%s): %w", i, line.Speaker, err)
			}
			clip.Index = i
			clip.Speaker = line.Speaker
			clips[i] = *clip
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return clips, nil
}
