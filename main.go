package main

import (
	"context"
	"log"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/podforge/podforge/audio"
	"github.com/podforge/podforge/config"
	"github.com/podforge/podforge/handlers"
	"github.com/podforge/podforge/llm"
	"github.com/podforge/podforge/models"
	"github.com/podforge/podforge/pipeline"
	"github.com/podforge/podforge/routes"
	"github.com/podforge/podforge/search"
	"github.com/podforge/podforge/storage"
	"github.com/podforge/podforge/tts"
)

func main() {
	cfg := config.Load()
	if cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY is required")
	}
	if cfg.TavilyAPIKey == "" {
		log.Fatal("TAVILY_API_KEY is required")
	}
	ctx := context.Background()

	clientTextToSpeech, err := texttospeech.NewClient(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer clientTextToSpeech.Close()

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Error creating client: %v\n", err)
	}
	defer client.Close()

	model := client.GenerativeModel(cfg.GeminiModel)
	// model configuration
	model.SetTemperature(1)
	model.SetTopK(64)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(8192)

	gemini := llm.NewGemini(model)
	gemini.DropUnattributed = cfg.DropUnattributedLines

	p := &pipeline.Pipeline{
		Search:      search.NewTavilyClient(cfg.TavilyAPIKey, cfg.SearchTimeout),
		Summarizer:  gemini,
		Scripter:    gemini,
		Synthesizer: tts.NewGoogleSynthesizer(clientTextToSpeech, cfg.TTSLanguage, cfg.TTSTimeout),
		Assembler:   audio.NewAssembler(cfg.OutputDir),
		Voices: tts.VoiceMap{
			models.SpeakerHost:  cfg.HostVoice,
			models.SpeakerGuest: cfg.GuestVoice,
		},
		Opts: pipeline.Options{
			MaxSearchResults: cfg.MaxSearchResults,
			GapMS:            cfg.LineGapMS,
			TTSConcurrency:   cfg.TTSConcurrency,
			SearchTimeout:    cfg.SearchTimeout,
			LLMTimeout:       cfg.LLMTimeout,
			TTSTimeout:       cfg.TTSTimeout,
		},
	}

	h := handlers.NewHandler(p, storage.NewStorage())

	r := gin.Default()
	routes.RegisterRoutes(r, h)
	r.Run(cfg.HTTPAddr)
}
