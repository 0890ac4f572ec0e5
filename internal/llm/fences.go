package llm

import "strings"

// StripFences removes markdown code-fence wrappers from model output.
// Models sometimes wrap the LaTeX in ``` blocks despite being instructed not
// to. Idempotent: text without fences comes back unchanged after a trim.
func StripFences(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```latex") {
		text = strings.TrimPrefix(text, "```latex")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// A short first line with no spaces or braces is a language tag, not
		// content; drop it. Content on the fence line itself is kept.
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if firstLine != "" && len(firstLine) < 20 &&
				!strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") &&
				!strings.HasPrefix(firstLine, "\\") {
				text = text[idx+1:]
			}
		}
	}

	if idx := strings.LastIndex(text, "```"); idx >= 0 && strings.TrimSpace(text[idx+3:]) == "" {
		text = text[:idx]
	}

	return strings.TrimSpace(text)
}
