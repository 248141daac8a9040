package match

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"resume-quality/internal/segment"
)

// ATS dimension weights. They sum to 1.
const (
	WeightFormatting    = 0.20
	WeightKeywords      = 0.30
	WeightStructure     = 0.25
	WeightReadability   = 0.10
	WeightCompatibility = 0.15
)

// ATS issue categories.
const (
	CategoryFormatting    = "formatting"
	CategoryKeywords      = "keywords"
	CategoryStructure     = "structure"
	CategoryReadability   = "readability"
	CategoryCompatibility = "compatibility"
)

// ATS issue severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// ATSIssue is one applicant-tracking-system compatibility finding.
type ATSIssue struct {
	Category string `json:"category"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Fix      string `json:"fix,omitempty"`
}

// ATSBreakdown holds the per-dimension ATS scores and their weighted average.
type ATSBreakdown struct {
	Score           int        `json:"score"`
	Formatting      int        `json:"formatting"`
	Keywords        int        `json:"keywords"`
	Structure       int        `json:"structure"`
	Readability     int        `json:"readability"`
	Compatibility   int        `json:"compatibility"`
	Issues          []ATSIssue `json:"issues"`
	Recommendations []string   `json:"recommendations"`
}

// ATSInput is everything the ATS scorer looks at.
type ATSInput struct {
	Text        string
	Document    segment.Document
	Readability int
	Match       *Result
}

const (
	maxLineLength      = 120
	minResumeWords     = 150
	maxResumeWords     = 1000
	minCoverWords      = 150
	minKeywordSkills   = 5
	lowReadability     = 50
	keywordBaseScore   = 40
	keywordPerSkill    = 10
	allCapsLineLimit   = 3
	missingCorePenalty = 25
)

var (
	graphicGlyphs = regexp.MustCompile(`[★☆✓✔✗✘■□◆◇►▶●○◉❖➢➤→]`)
	imageMarker   = regexp.MustCompile(`(?i)(<img\b|\[(image|photo|logo|chart)\]|!\[[^\]]*\]\()`)
	bulletMarker  = regexp.MustCompile(`^\s*([-*•▪◦●‣·–])\s`)
	greeting      = regexp.MustCompile(`(?im)^\s*(dear|hello|hi|to whom it may concern)\b`)
	signOff       = regexp.MustCompile(`(?im)^\s*(sincerely|regards|best regards|kind regards|thank you|respectfully)\b`)
)

type atsScan struct {
	issues []ATSIssue
}

func (s *atsScan) add(category, severity, message, fix string) {
	s.issues = append(s.issues, ATSIssue{Category: category, Severity: severity, Message: message, Fix: fix})
}

// ATS scores how well the document survives applicant tracking systems. Each dimension
// starts at 100 and loses points per finding; every deduction is reported as an issue.
func ATS(in ATSInput) ATSBreakdown {
	s := &atsScan{}
	lines := strings.Split(in.Text, "\n")

	out := ATSBreakdown{
		Formatting:    s.formatting(lines, in.Document),
		Keywords:      s.keywords(in),
		Structure:     s.structure(in.Text, in.Document),
		Readability:   clamp(in.Readability),
		Compatibility: s.compatibility(in.Text, lines, in.Document),
	}
	if out.Readability < lowReadability {
		s.add(CategoryReadability, SeverityWarning,
			fmt.Sprintf("Readability score %d is low", out.Readability),
			"Shorten long sentences and prefer common words")
	}
	out.Score = clamp(int(math.Round(
		WeightFormatting*float64(out.Formatting) +
			WeightKeywords*float64(out.Keywords) +
			WeightStructure*float64(out.Structure) +
			WeightReadability*float64(out.Readability) +
			WeightCompatibility*float64(out.Compatibility))))
	out.Issues = s.issues
	if out.Issues == nil {
		out.Issues = []ATSIssue{}
	}
	out.Recommendations = recommend(out.Issues)
	return out
}

func (s *atsScan) formatting(lines []string, doc segment.Document) int {
	score := 100

	long := 0
	caps := 0
	markers := map[string]bool{}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if utf8.RuneCountInString(trimmed) > maxLineLength {
			long++
		}
		if _, header := segment.MatchHeader(trimmed); !header && isAllCaps(trimmed) {
			caps++
		}
		if m := bulletMarker.FindStringSubmatch(line); m != nil {
			markers[m[1]] = true
		}
	}
	if long > 0 {
		score -= min(20, 5*long)
		s.add(CategoryFormatting, SeverityInfo,
			fmt.Sprintf("%d line(s) exceed %d characters", long, maxLineLength),
			"Break long lines into concise bullet points")
	}
	if caps > allCapsLineLimit {
		score -= 10
		s.add(CategoryFormatting, SeverityWarning,
			fmt.Sprintf("%d lines are written in all capitals", caps),
			"Reserve capitals for section headers")
	}
	if len(markers) > 1 {
		score -= 10
		s.add(CategoryFormatting, SeverityInfo,
			"Bullet markers are inconsistent",
			"Use one bullet style throughout the document")
	}
	if doc.Type == segment.DocumentResume {
		if exp, ok := doc.Sections.Get(segment.SectionExperience); ok && len(exp.Items) < 2 {
			score -= 15
			s.add(CategoryFormatting, SeverityWarning,
				"Experience section is not broken into bullet points",
				"List accomplishments as separate bullet points under each role")
		}
	}
	return clamp(score)
}

func (s *atsScan) keywords(in ATSInput) int {
	if in.Match != nil && len(in.Match.Required) > 0 {
		if len(in.Match.Missing) > 0 {
			severity := SeverityWarning
			if in.Match.Score < 50 {
				severity = SeverityError
			}
			s.add(CategoryKeywords, severity,
				fmt.Sprintf("Missing %d of %d job keywords", len(in.Match.Missing), len(in.Match.Required)),
				"Add these keywords where they truthfully apply: "+strings.Join(in.Match.Missing, ", "))
		}
		return clamp(in.Match.Score)
	}

	skills := VocabularyKeywords(in.Text)
	if len(skills) < minKeywordSkills && in.Document.Type == segment.DocumentResume {
		s.add(CategoryKeywords, SeverityWarning,
			fmt.Sprintf("Only %d recognizable skill keywords found", len(skills)),
			"Name the tools, languages and methods you use explicitly")
	}
	return clamp(keywordBaseScore + keywordPerSkill*len(skills))
}

func (s *atsScan) structure(text string, doc segment.Document) int {
	score := 100
	meta := doc.Metadata

	switch doc.Type {
	case segment.DocumentResume:
		core := []struct {
			section  segment.Section
			severity string
		}{
			{segment.SectionExperience, SeverityError},
			{segment.SectionEducation, SeverityWarning},
			{segment.SectionSkills, SeverityWarning},
		}
		for _, c := range core {
			if doc.Sections.Has(c.section) {
				continue
			}
			score -= missingCorePenalty
			s.add(CategoryStructure, c.severity,
				fmt.Sprintf("No %s section found", c.section),
				fmt.Sprintf("Add a section titled %q", headerTitle(c.section)))
		}
		if !doc.Sections.Has(segment.SectionSummary) {
			score -= 10
			s.add(CategoryStructure, SeverityInfo, "No summary section found",
				"Open with a two or three line professional summary")
		}
		if !meta.HasEmail {
			score -= 15
			s.add(CategoryStructure, SeverityError, "No email address found",
				"Put your email address in the header")
		}
		if !meta.HasPhone {
			score -= 5
			s.add(CategoryStructure, SeverityInfo, "No phone number found",
				"Add a phone number to the header")
		}
	case segment.DocumentCoverLetter:
		if !greeting.MatchString(text) {
			score -= 10
			s.add(CategoryStructure, SeverityInfo, "No greeting found",
				`Open with a greeting such as "Dear Hiring Manager,"`)
		}
		if !signOff.MatchString(text) {
			score -= 10
			s.add(CategoryStructure, SeverityInfo, "No closing found",
				`End with a closing such as "Sincerely,"`)
		}
		if meta.WordCount < minCoverWords {
			score -= 20
			s.add(CategoryStructure, SeverityWarning,
				fmt.Sprintf("Cover letter is short (%d words)", meta.WordCount),
				"Expand on why you fit the role")
		}
	}
	return clamp(score)
}

func (s *atsScan) compatibility(text string, lines []string, doc segment.Document) int {
	score := 100

	tables := 0
	for _, line := range lines {
		if strings.Count(line, "|") >= 3 || strings.Count(line, "\t") >= 2 {
			tables++
		}
	}
	if tables > 0 {
		score -= 20
		s.add(CategoryCompatibility, SeverityError,
			"Table or column layout detected",
			"Replace tables and columns with plain single-column text")
	}
	if imageMarker.MatchString(text) {
		score -= 20
		s.add(CategoryCompatibility, SeverityError,
			"Image or graphic reference detected",
			"Remove images; parsers cannot read them")
	}
	if graphicGlyphs.MatchString(text) {
		score -= 10
		s.add(CategoryCompatibility, SeverityWarning,
			"Decorative symbols detected",
			"Replace icons and symbols with plain text")
	}
	if doc.Type == segment.DocumentResume {
		switch words := doc.Metadata.WordCount; {
		case words < minResumeWords:
			score -= 10
			s.add(CategoryCompatibility, SeverityWarning,
				fmt.Sprintf("Resume is short (%d words)", words),
				"Describe your roles and results in more detail")
		case words > maxResumeWords:
			score -= 10
			s.add(CategoryCompatibility, SeverityInfo,
				fmt.Sprintf("Resume is long (%d words)", words),
				"Trim older or less relevant roles")
		}
	}
	return clamp(score)
}

// recommend turns per-category issue counts into advice.
func recommend(issues []ATSIssue) []string {
	counts := map[string]int{}
	for _, issue := range issues {
		counts[issue.Category]++
	}
	out := []string{}
	if counts[CategoryStructure] > 0 {
		out = append(out, "Use standard section headers (Summary, Experience, Education, Skills) so parsers can find your content")
	}
	if counts[CategoryKeywords] > 0 {
		out = append(out, "Mirror the job description's required skills using the same wording")
	}
	if counts[CategoryFormatting] >= 2 {
		out = append(out, "Simplify formatting: one bullet style, short lines, no decorative capitals")
	}
	if counts[CategoryCompatibility] > 0 {
		out = append(out, "Keep the layout to plain single-column text without tables, images or icons")
	}
	if counts[CategoryReadability] > 0 {
		out = append(out, "Improve readability with shorter sentences and plain wording")
	}
	return out
}

func isAllCaps(s string) bool {
	letters := 0
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			letters++
		}
	}
	return letters >= 4
}

func headerTitle(s segment.Section) string {
	name := string(s)
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
