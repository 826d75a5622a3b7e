package llm

import (
	"log/slog"
	"strings"

	"github.com/podforge/podforge/models"
)

// ParseScript turns the model completion back into ordered script lines.
// Recognized turn markers are "Host:" and "Guest:" at the start of a line,
// case-insensitive. Lines without a marker are appended to the previous
// speaker's turn, or dropped when dropUnattributed is set; text before the
// first marker is always dropped. Zero recognized turns is a parse failure.
func ParseScript(raw string, dropUnattributed bool) (models.Script, error) {
	var script models.Script

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if speaker, rest, ok := matchSpeaker(line); ok {
			if rest != "" {
				script = append(script, models.ScriptLine{Speaker: speaker, Text: rest})
			}
			continue
		}
		if len(script) == 0 || dropUnattributed {
			continue
		}
		// Continuation of the previous turn (the model wrapped a line).
		last := &script[len(script)-1]
		last.Text = last.Text + " " + line
	}

	if len(script) == 0 {
		return nil, models.ErrScriptParse
	}
	for _, sp := range []models.Speaker{models.SpeakerHost, models.SpeakerGuest} {
		if !script.HasSpeaker(sp) {
			// Quality defect, not a hard failure: a one-sided script still
			// synthesizes, it just is not much of a conversation.
			slog.Warn("script is missing a role", "speaker", sp)
		}
	}
	return script, nil
}

func matchSpeaker(line string) (models.Speaker, string, bool) {
	// Models sometimes decorate the marker ("**Host:**", "- Guest:").
	trimmed := strings.TrimLeft(line, "*_- ")
	for _, sp := range []models.Speaker{models.SpeakerHost, models.SpeakerGuest} {
		prefix := string(sp) + ":"
		if len(trimmed) >= len(prefix) && strings.EqualFold(trimmed[:len(prefix)], prefix) {
			rest := strings.TrimSpace(trimmed[len(prefix):])
			rest = strings.Trim(rest, "*_")
			return sp, strings.TrimSpace(rest), true
		}
	}
	return "", "", false
}
