package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"resume-quality/internal/segment"
)

const (
	// PassThreshold is the minimum score for a valid document.
	PassThreshold = 70
	// NeutralScore is reported for empty input.
	NeutralScore = 50

	baseScore        = 100
	criticalPenalty  = 10
	majorPenalty     = 5
	minorPenalty     = 2
	cleanBonus       = 5
	bonusMinWords    = 100
	densityThreshold = 5.0
	densityPenalty   = 10
)

// Check runs every enabled detection pass over text and scores the result.
// It reads only package-level tables and is safe for concurrent use.
func Check(text string, docType segment.DocumentType) Result {
	if strings.TrimSpace(text) == "" {
		return Result{
			Issues:  []Issue{},
			Score:   NeutralScore,
			IsValid: NeutralScore >= PassThreshold,
		}
	}

	s := &scan{text: text, words: wordPattern.FindAllStringIndex(text, -1)}
	if Enabled(docType, CheckSpelling) {
		s.spelling()
	}
	if Enabled(docType, CheckRepeatedWords) {
		s.repeatedWords()
	}
	if Enabled(docType, CheckGrammar) {
		s.patterns(grammarRules)
	}
	if Enabled(docType, CheckPunctuation) {
		s.patterns(punctuationRules)
		s.terminalPunctuation()
	}
	if Enabled(docType, CheckInformal) {
		s.phrases(informalPattern, "informal-language", func(m string) (string, string, []string) {
			return fmt.Sprintf("Informal wording %q", m), "Use a more professional term", nil
		})
	}
	if Enabled(docType, CheckCliches) {
		s.phrases(clichePattern, "cliche", func(m string) (string, string, []string) {
			return fmt.Sprintf("Clichéd phrase %q", m), "Replace the phrase with a concrete example or result", nil
		})
	}
	if Enabled(docType, CheckWeakVerbs) {
		s.phrases(weakVerbPattern, "weak-verb", func(m string) (string, string, []string) {
			alts := weakVerbs[strings.ToLower(m)]
			return fmt.Sprintf("Weak verb %q", m),
				"Use a stronger verb such as "+strings.Join(alts, ", "),
				append([]string(nil), alts...)
		})
	}
	if Enabled(docType, CheckDuplicateSentences) {
		s.duplicateSentences()
	}

	sortIssues(s.issues)
	counts := Tally(s.issues)
	wordCount := len(s.words)
	score := Score(counts, wordCount)
	return Result{
		Issues:    s.issues,
		Score:     score,
		IsValid:   score >= PassThreshold,
		Counts:    counts,
		WordCount: wordCount,
	}
}

// Tally counts issues by type and severity.
func Tally(issues []Issue) Counts {
	var c Counts
	for _, issue := range issues {
		switch issue.Type {
		case TypeSpelling:
			c.Spelling++
		case TypeGrammar:
			c.Grammar++
		case TypePunctuation:
			c.Punctuation++
		case TypeStyle:
			c.Style++
		}
		switch issue.Severity {
		case SeverityCritical:
			c.Critical++
		case SeverityMajor:
			c.Major++
		default:
			c.Minor++
		}
		c.Total++
	}
	return c
}

// Score applies severity deductions, the clean-document bonuses and the density
// penalty, clamped to [0,100].
func Score(c Counts, wordCount int) int {
	score := baseScore - criticalPenalty*c.Critical - majorPenalty*c.Major - minorPenalty*c.Minor
	if wordCount > bonusMinWords {
		if c.Spelling == 0 {
			score += cleanBonus
		}
		if c.Grammar == 0 {
			score += cleanBonus
		}
	}
	if wordCount > 0 && float64(c.Total)*100/float64(wordCount) > densityThreshold {
		score -= densityPenalty
	}
	return clamp(score)
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

type scan struct {
	text   string
	words  [][]int
	issues []Issue
}

// emit records an issue located at text[start:end]; out-of-range spans are dropped.
func (s *scan) emit(issue Issue, start, end int) {
	issue.Span = Span{Start: start, End: end}
	if !issue.Span.Valid(len(s.text)) {
		return
	}
	issue.Text = s.text[start:end]
	s.issues = append(s.issues, issue)
}

func (s *scan) spelling() {
	for _, w := range s.words {
		word := s.text[w[0]:w[1]]
		fix, ok := Misspelling(word)
		if !ok {
			continue
		}
		fix = matchCase(word, fix)
		s.emit(Issue{
			Type:         TypeSpelling,
			Severity:     SeverityCritical,
			Message:      fmt.Sprintf("Possible misspelling %q", word),
			Suggestion:   fmt.Sprintf("Did you mean %q?", fix),
			Replacements: []string{fix},
			RuleID:       "misspelling",
		}, w[0], w[1])
	}
}

func (s *scan) repeatedWords() {
	for i := 1; i < len(s.words); i++ {
		prev, cur := s.words[i-1], s.words[i]
		if strings.TrimSpace(s.text[prev[1]:cur[0]]) != "" {
			continue
		}
		a, b := s.text[prev[0]:prev[1]], s.text[cur[0]:cur[1]]
		if !strings.EqualFold(a, b) || doubledWords[strings.ToLower(a)] {
			continue
		}
		s.emit(Issue{
			Type:         TypeSpelling,
			Severity:     SeverityMajor,
			Message:      fmt.Sprintf("Repeated word %q", a),
			Suggestion:   "Remove the duplicate word",
			Replacements: []string{a},
			RuleID:       "repeated-word",
		}, prev[0], cur[1])
	}
}

func (s *scan) patterns(table []PatternRule) {
	whole := [][]int{{0, len(s.text)}}
	var sentences [][]int
	for _, rule := range table {
		segments := whole
		if rule.PerSentence {
			if sentences == nil {
				sentences = sentencePattern.FindAllStringIndex(s.text, -1)
			}
			segments = sentences
		}
		for _, seg := range segments {
			s.matchRule(rule, seg[0], s.text[seg[0]:seg[1]])
		}
	}
}

// matchRule applies rule to text, which starts at byte offset base of the scan.
func (s *scan) matchRule(rule PatternRule, base int, text string) {
	for _, m := range rule.Pattern.FindAllStringSubmatchIndex(text, -1) {
		groups := submatches(text, m)
		if rule.Skip != nil && rule.Skip(groups) {
			continue
		}
		start, end := m[2*rule.Group], m[2*rule.Group+1]
		if start < 0 {
			continue
		}
		fix := rule.Replacements[strings.ToLower(text[start:end])]

		issue := Issue{
			Type:       rule.Type,
			Severity:   rule.Severity,
			Message:    expand(rule, rule.Message, m, text, fix),
			Suggestion: expand(rule, rule.Suggestion, m, text, fix),
			RuleID:     rule.ID,
		}
		switch {
		case rule.Replace != "":
			issue.Replacements = []string{expand(rule, rule.Replace, m, text, fix)}
		case fix != "":
			issue.Replacements = []string{fix}
		}
		s.emit(issue, base+start, base+end)
	}
}

func (s *scan) terminalPunctuation() {
	offset := 0
	for _, line := range strings.SplitAfter(s.text, "\n") {
		lineStart := offset
		offset += len(line)

		trimmed := strings.TrimSpace(line)
		if utf8.RuneCountInString(trimmed) <= minTerminalLineLen || bulletLinePattern.MatchString(trimmed) {
			continue
		}
		if strings.ContainsAny(trimmed[len(trimmed)-1:], terminalMarks) {
			continue
		}
		start := lineStart + strings.Index(line, trimmed)
		s.emit(Issue{
			Type:         TypePunctuation,
			Severity:     SeverityMinor,
			Message:      "Line does not end with terminal punctuation",
			Suggestion:   "End the sentence with a period",
			Replacements: []string{trimmed + "."},
			RuleID:       "missing-terminal-punctuation",
		}, start, start+len(trimmed))
	}
}

func (s *scan) phrases(pattern *regexp.Regexp, ruleID string, describe func(match string) (message, suggestion string, replacements []string)) {
	for _, m := range pattern.FindAllStringIndex(s.text, -1) {
		message, suggestion, replacements := describe(s.text[m[0]:m[1]])
		s.emit(Issue{
			Type:         TypeStyle,
			Severity:     SeverityMinor,
			Message:      message,
			Suggestion:   suggestion,
			Replacements: replacements,
			RuleID:       ruleID,
		}, m[0], m[1])
	}
}

func (s *scan) duplicateSentences() {
	seen := make(map[string]bool)
	for _, m := range sentencePattern.FindAllStringIndex(s.text, -1) {
		raw := s.text[m[0]:m[1]]
		trimmed := strings.TrimSpace(raw)
		key := sentenceKey(trimmed)
		if len(strings.Fields(key)) < 3 {
			continue
		}
		if !seen[key] {
			seen[key] = true
			continue
		}
		start := m[0] + strings.Index(raw, trimmed)
		s.emit(Issue{
			Type:       TypeStyle,
			Severity:   SeverityMajor,
			Message:    "Sentence repeats an earlier sentence",
			Suggestion: "Remove the duplicate or rephrase it",
			RuleID:     "duplicate-sentence",
		}, start, start+len(trimmed))
	}
}

func sentenceKey(sentence string) string {
	sentence = strings.TrimRight(sentence, ".!? ")
	return strings.ToLower(strings.Join(strings.Fields(sentence), " "))
}

func submatches(text string, m []int) []string {
	groups := make([]string, len(m)/2)
	for i := range groups {
		if m[2*i] >= 0 {
			groups[i] = text[m[2*i]:m[2*i+1]]
		}
	}
	return groups
}

func expand(rule PatternRule, template string, m []int, text, fix string) string {
	if template == "" {
		return ""
	}
	out := string(rule.Pattern.ExpandString(nil, template, text, m))
	return strings.ReplaceAll(out, "{fix}", fix)
}

// matchCase capitalises fix when word starts with an upper-case letter.
func matchCase(word, fix string) string {
	r, _ := utf8.DecodeRuneInString(word)
	if !unicode.IsUpper(r) || fix == "" {
		return fix
	}
	f, size := utf8.DecodeRuneInString(fix)
	return string(unicode.ToUpper(f)) + fix[size:]
}

func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		if a.Span.End != b.Span.End {
			return a.Span.End < b.Span.End
		}
		return a.RuleID < b.RuleID
	})
}
