package audio

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/podforge/podforge/models"
)

// Assembler concatenates clips into a single artifact under Dir. With
// EncodeMP3 set the artifact is transcoded to MP3 via ffmpeg, otherwise it
// stays WAV.
type Assembler struct {
	Dir       string
	EncodeMP3 bool
}

// NewAssembler creates an assembler writing into dir (default "podcasts").
// MP3 export is enabled when ffmpeg is on PATH.
func NewAssembler(dir string) *Assembler {
	if dir == "" {
		dir = "podcasts"
	}
	return &Assembler{Dir: dir, EncodeMP3: FFmpegAvailable()}
}

// Assemble concatenates the clips in index order, inserting gapMS of
// silence between consecutive clips, and writes {dir}/{name}.mp3 (or .wav
// without ffmpeg). All clips must share one sample rate; total duration is
// the sum of clip durations plus the inserted gaps.
func (a *Assembler) Assemble(clips []models.AudioClip, gapMS int, name string) (*models.Podcast, error) {
	if len(clips) == 0 {
		return nil, fmt.Errorf("%w: no clips to assemble", models.ErrAssembly)
	}
	if gapMS < 0 {
		gapMS = 0
	}

	decoded := make([]pcm, len(clips))
	rate := 0
	for i, clip := range clips {
		p, err := decodeClip(clip)
		if err != nil {
			return nil, fmt.Errorf("clip %d: %w", i, err)
		}
		if rate == 0 {
			rate = p.rate
		} else if p.rate != rate {
			return nil, fmt.Errorf("%w: clip %d sample rate %d does not match %d", models.ErrAssembly, i, p.rate, rate)
		}
		decoded[i] = p
	}

	total := 0
	for _, p := range decoded {
		total += len(p.samples)
	}
	gap := Silence(gapMS, rate)
	combined := make([]int, 0, total+len(gap)*(len(decoded)-1))
	for i, p := range decoded {
		if i > 0 {
			combined = append(combined, gap...)
		}
		combined = append(combined, p.samples...)
	}
	duration := time.Duration(len(combined)) * time.Second / time.Duration(rate)

	wavBytes, err := EncodeWAV(combined, rate)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding wav: %v", models.ErrAssembly, err)
	}

	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrAssembly, err)
	}
	wavPath := filepath.Join(a.Dir, name+".wav")
	if err := os.WriteFile(wavPath, wavBytes, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrAssembly, err)
	}

	podcast := &models.Podcast{Path: wavPath, Format: "wav", Duration: duration}
	if !a.EncodeMP3 {
		slog.Debug("mp3 export disabled, keeping wav output", "path", wavPath)
		return podcast, nil
	}

	mp3Path := filepath.Join(a.Dir, name+".mp3")
	if err := encodeMP3(wavPath, mp3Path); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrAssembly, err)
	}
	os.Remove(wavPath)
	podcast.Path = mp3Path
	podcast.Format = "mp3"
	return podcast, nil
}
