package intent

import "strings"

// ExtractObject pulls the candidate JSON object out of raw model output.
// Models wrap JSON in markdown fences or surround it with prose, so the
// extraction is positional: everything from the first '{' through the
// last '}'. Returns ok=false when no brace-delimited candidate exists;
// whether the candidate actually decodes is the caller's concern.
func ExtractObject(raw string) (string, bool) {
	cleaned := strings.TrimSpace(raw)

	// Strip markdown code fences if present.
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end < start {
		return "", false
	}

	return cleaned[start : end+1], true
}
