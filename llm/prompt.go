package llm

import (
	"fmt"
	"strings"

	"github.com/podforge/podforge/models"
)

func summaryPrompt(topic string, results []models.SearchResult) string {
	var sb strings.Builder

	if len(results) == 0 {
		// Degraded mode: nothing came back from search, so the brief is
		// built from the model's own knowledge of the topic.
		fmt.Fprintf(&sb, "Write a research brief about %q for a podcast episode.\n\n", topic)
		sb.WriteString(`Structure it as:
1. Key summary: an overall summary of the topic (3-5 sentences)
2. Main points: the core content worth covering in a podcast (bullet points)
3. Interesting facts: details that work well as conversation material

Brief:`)
		return sb.String()
	}

	fmt.Fprintf(&sb, "The following are web search results about %q. Organize and summarize them.\n\n", topic)
	sb.WriteString("Search results:\n")
	for i, r := range results {
		fmt.Fprintf(&sb, "[Source %d] %s\n", i+1, r.Title)
		if r.URL != "" {
			fmt.Fprintf(&sb, "URL: %s\n", r.URL)
		}
		fmt.Fprintf(&sb, "Content: %s\n\n", r.Snippet)
	}
	sb.WriteString(`Structure the summary as:
1. Key summary: an overall summary of the topic (3-5 sentences)
2. Main points: the core content worth covering in a podcast (bullet points)
3. Interesting facts: details that work well as conversation material
4. Sources: the main sources referenced

Summary:`)
	return sb.String()
}

func scriptPrompt(topic string, brief models.Brief) string {
	return fmt.Sprintf(`You are a professional podcast writer. Using the topic and the reference
material below, write an engaging and natural two-person podcast script.

Topic: %s

Reference material:
%s

Script rules:
1. The conversation is between Host (the presenter) and Guest (the expert).
2. Use a natural, friendly conversational tone.
3. Deliver the key information about the topic in an entertaining way.
4. Write 15-25 conversation turns.
5. Every line MUST use exactly this format:

Host: [host's line]
Guest: [guest's line]
Host: [host's line]
...

Begin the script:`, topic, brief)
}
