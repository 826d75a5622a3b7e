// Package audio decodes synthesized clips, concatenates them with silence
// gaps, and exports the final podcast artifact.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/podforge/podforge/models"
)

const bitDepth = 16

// pcm is a decoded clip, normalized to mono 16-bit samples.
type pcm struct {
	samples []int
	rate    int
}

func (p pcm) duration() time.Duration {
	if p.rate == 0 {
		return 0
	}
	return time.Duration(len(p.samples)) * time.Second / time.Duration(p.rate)
}

// decodeClip decodes WAV or MP3 clip bytes into mono PCM. Stereo sources
// get downmixed so heterogeneous providers can still be concatenated.
func decodeClip(clip models.AudioClip) (pcm, error) {
	switch clip.Format {
	case "wav", "":
		return decodeWAV(clip.Data)
	case "mp3":
		return decodeMP3(clip.Data)
	default:
		return pcm{}, fmt.Errorf("%w: unsupported clip format %q", models.ErrAssembly, clip.Format)
	}
}

func decodeWAV(data []byte) (pcm, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return pcm{}, fmt.Errorf("%w: decoding wav: %v", models.ErrAssembly, err)
	}
	if buf.Format == nil || buf.Format.SampleRate == 0 {
		return pcm{}, fmt.Errorf("%w: wav clip has no format", models.ErrAssembly)
	}
	samples := buf.Data
	if buf.Format.NumChannels > 1 {
		samples = downmix(samples, buf.Format.NumChannels)
	}
	return pcm{samples: samples, rate: buf.Format.SampleRate}, nil
}

func decodeMP3(data []byte) (pcm, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return pcm{}, fmt.Errorf("%w: decoding mp3: %v", models.ErrAssembly, err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return pcm{}, fmt.Errorf("%w: reading mp3 stream: %v", models.ErrAssembly, err)
	}
	// go-mp3 always emits 16-bit little-endian stereo.
	samples := make([]int, 0, len(raw)/4)
	for i := 0; i+3 < len(raw); i += 4 {
		l := int(int16(uint16(raw[i]) | uint16(raw[i+1])<<8))
		r := int(int16(uint16(raw[i+2]) | uint16(raw[i+3])<<8))
		samples = append(samples, (l+r)/2)
	}
	return pcm{samples: samples, rate: dec.SampleRate()}, nil
}

func downmix(interleaved []int, channels int) []int {
	mono := make([]int, 0, len(interleaved)/channels)
	for i := 0; i+channels-1 < len(interleaved); i += channels {
		sum := 0
		for c := 0; c < channels; c++ {
			sum += interleaved[i+c]
		}
		mono = append(mono, sum/channels)
	}
	return mono
}

// EncodeWAV renders mono 16-bit samples into an in-memory WAV file.
func EncodeWAV(samples []int, rate int) ([]byte, error) {
	var buf writeSeekBuffer
	enc := wav.NewEncoder(&buf, rate, bitDepth, 1, 1)
	err := enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	})
	if err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ClipDuration decodes just enough of a clip to report its play time.
func ClipDuration(clip models.AudioClip) (time.Duration, error) {
	p, err := decodeClip(clip)
	if err != nil {
		return 0, err
	}
	return p.duration(), nil
}

// Silence returns ms of silent mono samples at the given rate.
func Silence(ms, rate int) []int {
	return make([]int, rate*ms/1000)
}

// writeSeekBuffer adapts a byte slice to io.WriteSeeker for the wav
// encoder, which patches chunk sizes after writing.
type writeSeekBuffer struct {
	data []byte
	pos  int
}

func (b *writeSeekBuffer) Write(p []byte) (int, error) {
	if need := b.pos + len(p); need > len(b.data) {
		b.data = append(b.data, make([]byte, need-len(b.data))...)
	}
	copy(b.data[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *writeSeekBuffer) Seek(offset int64, whence int) (int64, error) {
	var next int
	switch whence {
	case io.SeekStart:
		next = int(offset)
	case io.SeekCurrent:
		next = b.pos + int(offset)
	case io.SeekEnd:
		next = len(b.data) + int(offset)
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("negative seek position %d", next)
	}
	b.pos = next
	return int64(next), nil
}

func (b *writeSeekBuffer) Bytes() []byte { return b.data }
