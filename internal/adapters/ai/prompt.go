package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/comitanigiacomo/habitual/internal/core/domain"
)

const systemInstruction = `You are a motivational coach. Reply with valid JSON only, shaped as {"message": "..."}.`

var promptTemplate = template.Must(template.New("motivation").Parse(
	`Generate a personalized motivational message based on the user's habit tracking history.

Habit Name: {{.HabitName}}
Completion History: {{if .CompletionHistory}}{{.CompletionHistory}}{{else}}(no completions yet){{end}}
Streak Length: {{.StreakLength}}

Encourage the user to continue tracking their habit. {{if gt .StreakLength 0}}They have a streak going, encourage them to keep it alive. {{end}}The message should be no more than 2 sentences.
`))

func buildPrompt(input domain.MotivationInput) (string, error) {
	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, input); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}

type motivationReply struct {
	Message string `json:"message"`
}

// parseReply extracts the message from a model reply. JSON replies may be
// wrapped in prose or code fences; plain text is accepted as is.
func parseReply(content string) (string, error) {
	raw := strings.TrimSpace(content)
	if raw == "" {
		return "", domain.ErrEmptyMotivation
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return raw, nil
	}

	var reply motivationReply
	if err := json.Unmarshal([]byte(raw[start:end+1]), &reply); err != nil {
		return "", fmt.Errorf("failed to parse motivation reply: %w", err)
	}
	if strings.TrimSpace(reply.Message) == "" {
		return "", domain.ErrEmptyMotivation
	}
	return reply.Message, nil
}
