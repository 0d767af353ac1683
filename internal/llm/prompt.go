package llm

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a prompt engineer. Rewrite drafts into clear, complete instructions for a language model."

func clipText(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 || len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func buildRefinePrompt(req RefineRequest) (string, error) {
	instructions := strings.TrimSpace(req.Instructions)
	if instructions == "" {
		return "", ErrEmptyPrompt
	}
	var b strings.Builder
	b.WriteString("Improve the following draft prompt. Keep the author's intent, make the task, constraints, ")
	b.WriteString("inputs and expected output format explicit, and remove ambiguity.\n")
	b.WriteString("Reply with the improved prompt only.\n\n")
	b.WriteString("Draft:\n")
	b.WriteString(instructions)
	b.WriteString("\n")
	if feedback := strings.TrimSpace(req.Feedback); feedback != "" {
		b.WriteString("\nReviewer feedback to address:\n")
		b.WriteString(feedback)
		b.WriteString("\n")
	}
	if context := buildAttachmentContext(req.Attachments, maxContextChars); context != "" {
		b.WriteString("\nReference material the prompt will be used with:\n")
		b.WriteString(context)
	}
	return b.String(), nil
}

// buildAttachmentContext concatenates attachments, spending the budget in
// order so later files are clipped first.
func buildAttachmentContext(attachments []Attachment, budget int) string {
	var b strings.Builder
	remaining := budget
	for _, a := range attachments {
		if remaining <= 0 {
			break
		}
		body := clipText(a.Content, remaining)
		if body == "" {
			continue
		}
		fmt.Fprintf(&b, "--- %s ---\n%s\n", a.Name, body)
		remaining -= len([]rune(body))
	}
	return b.String()
}
