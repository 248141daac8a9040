package segment

import (
	"regexp"
	"strings"
)

var (
	emailPattern    = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(\+?\d{1,3}[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}\b`)
	linkedInPattern = regexp.MustCompile(`(?i)\blinkedin\.com/in/[a-z0-9_\-]+`)
	gitHubPattern   = regexp.MustCompile(`(?i)\bgithub\.com/[a-z0-9_\-]+`)
)

// ExtractMetadata computes word/line counts and contact presence flags.
// It is independent of segmentation.
func ExtractMetadata(text string) Metadata {
	if strings.TrimSpace(text) == "" {
		return Metadata{}
	}
	return Metadata{
		WordCount:   len(strings.Fields(text)),
		LineCount:   countLines(text),
		HasEmail:    emailPattern.MatchString(text),
		HasPhone:    phonePattern.MatchString(text),
		HasLinkedIn: linkedInPattern.MatchString(text),
		HasGitHub:   gitHubPattern.MatchString(text),
	}
}

func countLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
