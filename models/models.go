package models

import "time"

// Speaker is one of the two fixed conversational roles in a script.
type Speaker string

const (
	SpeakerHost  Speaker = "Host"
	SpeakerGuest Speaker = "Guest"
)

// SearchResult is a single ranked hit from the web-search provider.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Brief is the condensed summary of search results used as grounding
// context for script generation.
type Brief string

// ScriptLine is one turn of the generated conversation.
type ScriptLine struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Script is the ordered conversation handed to synthesis.
type Script []ScriptLine

// HasSpeaker reports whether any line belongs to the given role.
func (s Script) HasSpeaker(sp Speaker) bool {
	for _, line := range s {
		if line.Speaker == sp {
			return true
		}
	}
	return false
}

// AudioClip is one synthesized segment, keyed by its script line index.
type AudioClip struct {
	Index    int
	Speaker  Speaker
	Format   string // "wav" or "mp3"
	Data     []byte
	Duration time.Duration
}

// Podcast is the final assembled artifact.
type Podcast struct {
	Path     string        `json:"path"`
	Format   string        `json:"format"`
	Duration time.Duration `json:"duration"`
	Script   Script        `json:"script"`
}

// Job is a completed generation run kept for artifact download.
type Job struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Podcast   *Podcast  `json:"podcast"`
	CreatedAt time.Time `json:"created_at"`
}
