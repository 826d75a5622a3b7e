// Package pipeline chains search, summarization, script generation, speech
// synthesis and audio assembly into a single podcast generation job.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/podforge/podforge/llm"
	"github.com/podforge/podforge/metrics"
	"github.com/podforge/podforge/models"
	"github.com/podforge/podforge/search"
	"github.com/podforge/podforge/tts"
)

// Stage names used in progress events, errors and metrics.
const (
	StageSearch    = "search"
	StageSummarize = "summarize"
	StageScript    = "script"
	StageSynthesis = "synthesis"
	StageAssembly  = "assembly"
)

// Event reports pipeline progress to the caller (websocket stream, logs).
type Event struct {
	Stage   string        `json:"stage"`
	Message string        `json:"message"`
	Script  models.Script `json:"script,omitempty"`
}

// Progress receives events as stages start and finish. May be nil.
type Progress func(Event)

// Assembler is the final stage contract; *audio.Assembler satisfies it.
type Assembler interface {
	Assemble(clips []models.AudioClip, gapMS int, name string) (*models.Podcast, error)
}

// Options bound the job.
type Options struct {
	MaxSearchResults int
	GapMS            int
	TTSConcurrency   int
	SearchTimeout    time.Duration
	LLMTimeout       time.Duration
	TTSTimeout       time.Duration
}

// Pipeline holds the stage implementations for one deployment. A single
// job per Run call, processed to completion; nothing persists across runs
// except the final artifact.
type Pipeline struct {
	Search      search.Collector
	Summarizer  llm.Summarizer
	Scripter    llm.ScriptGenerator
	Synthesizer tts.Synthesizer
	Assembler   Assembler
	Voices      tts.VoiceMap
	Opts        Options
}

// Run executes the full job for a topic. name becomes the artifact file
// name. Every stage failure aborts the rest of the job; the returned error
// identifies the failed stage.
func (p *Pipeline) Run(ctx context.Context, topic, name string, progress Progress) (*models.Podcast, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic must not be empty")
	}
	emit := func(ev Event) {
		if progress != nil {
			progress(ev)
		}
	}

	// Stage 1: search.
	emit(Event{Stage: StageSearch, Message: "searching the web"})
	var results []models.SearchResult
	err := p.stage(ctx, StageSearch, p.Opts.SearchTimeout, func(ctx context.Context) error {
		var err error
		results, err = p.Search.Collect(ctx, topic, p.Opts.MaxSearchResults)
		return err
	})
	if err != nil {
		return nil, err
	}
	emit(Event{Stage: StageSearch, Message: fmt.Sprintf("found %d results", len(results))})

	// Stage 2: summarize. Runs even with zero results; the summarizer
	// degrades to the topic alone.
	emit(Event{Stage: StageSummarize, Message: "summarizing results"})
	var brief models.Brief
	err = p.stage(ctx, StageSummarize, p.Opts.LLMTimeout, func(ctx context.Context) error {
		var err error
		brief, err = p.Summarizer.Summarize(ctx, topic, results)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Stage 3: script.
	emit(Event{Stage: StageScript, Message: "writing the script"})
	var script models.Script
	err = p.stage(ctx, StageScript, p.Opts.LLMTimeout, func(ctx context.Context) error {
		var err error
		script, err = p.Scripter.GenerateScript(ctx, topic, brief)
		return err
	})
	if err != nil {
		return nil, err
	}
	emit(Event{Stage: StageScript, Message: fmt.Sprintf("script has %d turns", len(script)), Script: script})

	// Stage 4: per-line synthesis, bounded concurrency, clips in line order.
	emit(Event{Stage: StageSynthesis, Message: "synthesizing speech"})
	var clips []models.AudioClip
	err = p.stage(ctx, StageSynthesis, 0, func(ctx context.Context) error {
		var err error
		clips, err = tts.SynthesizeScript(ctx, p.Synthesizer, script, p.Voices, p.Opts.TTSConcurrency)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Stage 5: assembly.
	emit(Event{Stage: StageAssembly, Message: "assembling audio"})
	var podcast *models.Podcast
	err = p.stage(ctx, StageAssembly, 0, func(ctx context.Context) error {
		var err error
		podcast, err = p.Assembler.Assemble(clips, p.Opts.GapMS, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	podcast.Script = script
	metrics.PodcastDuration.Observe(podcast.Duration.Seconds())
	emit(Event{Stage: StageAssembly, Message: fmt.Sprintf("podcast ready, %s", podcast.Duration.Round(time.Millisecond))})

	slog.Info("podcast generated",
		"topic", topic,
		"turns", len(script),
		"duration", podcast.Duration,
		"format", podcast.Format)
	return podcast, nil
}

// stage runs one step with cancellation checked at the boundary, an
// optional per-stage timeout, metrics, and stage-tagged errors.
func (p *Pipeline) stage(ctx context.Context, name string, timeout time.Duration, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return models.NewStageError(name, err)
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	start := time.Now()
	err := fn(ctx)
	metrics.ObserveStage(name, time.Since(start).Seconds(), err)
	if err != nil {
		slog.Error("pipeline stage failed", "stage", name, "error", err)
	}
	return models.NewStageError(name, err)
}
