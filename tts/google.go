package tts

import (
	"context"
	"fmt"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"github.com/podforge/podforge/audio"
	"github.com/podforge/podforge/models"
)

// SampleRate is requested from the provider for every clip so assembly can
// concatenate raw PCM without resampling.
const SampleRate = 24000

// GoogleSynthesizer implements Synthesizer on Google Cloud Text-to-Speech.
type GoogleSynthesizer struct {
	client   *texttospeech.Client
	language string
	timeout  time.Duration
}

// NewGoogleSynthesizer wraps an existing texttospeech client.
func NewGoogleSynthesizer(client *texttospeech.Client, language string, timeout time.Duration) *GoogleSynthesizer {
	if language == "" {
		language = "en-US"
	}
	return &GoogleSynthesizer{client: client, language: language, timeout: timeout}
}

// Synthesize requests LINEAR16 (WAV) audio for the text with the given
// voice name.
func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text, voice string) (*models.AudioClip, error) {
	if _, ok := ctx.Deadline(); !ok && g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: g.language,
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding:   texttospeechpb.AudioEncoding_LINEAR16,
			SampleRateHertz: SampleRate,
		},
	}

	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTTSUnavailable, err)
	}

	clip := &models.AudioClip{Format: "wav", Data: resp.AudioContent}
	if d, err := audio.ClipDuration(*clip); err == nil {
		clip.Duration = d
	}
	return clip, nil
}
