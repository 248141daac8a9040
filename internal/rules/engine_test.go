package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-quality/internal/segment"
)

const cleanText = "The platform team builds reliable services for payment processing across three regions. " +
	"Our engineers write clear code and review every change with care. " +
	"We measure latency for each request and publish the results to a shared dashboard. " +
	"The billing service handles millions of transactions per day with strong consistency guarantees. " +
	"New hires pair with senior engineers during their first month on the team. " +
	"Every quarter the group plans its roadmap with input from product managers and customers. " +
	"Incidents are rare because alerts reach the right people quickly. " +
	"Documentation lives next to the code and stays current through regular reviews. " +
	"Teams share ownership of the deployment pipeline and improve it when friction appears. " +
	"This approach keeps delivery steady while the business grows quickly."

func issuesByRule(res Result, ruleID string) []Issue {
	var out []Issue
	for _, issue := range res.Issues {
		if issue.RuleID == ruleID {
			out = append(out, issue)
		}
	}
	return out
}

func TestCheckMisspellingSuggestsCorrection(t *testing.T) {
	res := Check("Please recieve the package.", segment.DocumentOther)

	spelling := issuesByRule(res, "misspelling")
	require.Len(t, spelling, 1)
	assert.Equal(t, TypeSpelling, spelling[0].Type)
	assert.Equal(t, SeverityCritical, spelling[0].Severity)
	assert.Equal(t, "recieve", spelling[0].Text)
	assert.Equal(t, []string{"receive"}, spelling[0].Replacements)
	assert.Contains(t, spelling[0].Suggestion, "receive")
}

func TestCheckMisspellingKeepsCapitalisation(t *testing.T) {
	res := Check("Recieve the package.", segment.DocumentOther)

	spelling := issuesByRule(res, "misspelling")
	require.Len(t, spelling, 1)
	assert.Equal(t, []string{"Receive"}, spelling[0].Replacements)
}

func TestCheckSpansUseScanPosition(t *testing.T) {
	text := "I recieve mail. You recieve mail."
	res := Check(text, segment.DocumentOther)

	spelling := issuesByRule(res, "misspelling")
	require.Len(t, spelling, 2)
	assert.Equal(t, Span{Start: 2, End: 9}, spelling[0].Span)
	assert.Equal(t, Span{Start: 20, End: 27}, spelling[1].Span)
}

func TestCheckRepeatedWords(t *testing.T) {
	res := Check("We shipped the the release.", segment.DocumentOther)
	repeated := issuesByRule(res, "repeated-word")
	require.Len(t, repeated, 1)
	assert.Equal(t, "the the", repeated[0].Text)
	assert.Equal(t, SeverityMajor, repeated[0].Severity)

	res = Check("She had had enough.", segment.DocumentOther)
	assert.Empty(t, issuesByRule(res, "repeated-word"))
}

func TestCheckGrammarRules(t *testing.T) {
	cases := []struct {
		name         string
		text         string
		ruleID       string
		located      string
		replacements []string
	}{
		{"double negative", "We don't need nothing.", "double-negative", "don't need nothing", nil},
		{"its possessive", "The company lost it's own way.", "its-possessive", "it's", []string{"its"}},
		{"a before vowel", "She bought a apple.", "article-a-before-vowel", "a apple", []string{"an apple"}},
		{"an before consonant", "He drove an car.", "article-an-before-consonant", "an car", []string{"a car"}},
		{"redundant phrase", "The end result was clear.", "redundant-phrase", "end result", []string{"result"}},
		{"fragment", "Because the deadline moved.", "sentence-fragment", "Because the deadline moved.", nil},
		{"oxford comma", "We wrote Go, Python and SQL.", "missing-oxford-comma", "Go, Python and SQL", []string{"Go, Python, and SQL"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Check(tc.text, segment.DocumentOther)
			found := issuesByRule(res, tc.ruleID)
			require.Len(t, found, 1, "issues: %+v", res.Issues)
			assert.Equal(t, TypeGrammar, found[0].Type)
			assert.Equal(t, tc.located, found[0].Text)
			assert.Equal(t, tc.replacements, found[0].Replacements)
			assert.NotEmpty(t, found[0].Message)
		})
	}
}

func TestCheckArticleExceptions(t *testing.T) {
	res := Check("He joined a university after an hour.", segment.DocumentOther)

	assert.Empty(t, issuesByRule(res, "article-a-before-vowel"))
	assert.Empty(t, issuesByRule(res, "article-an-before-consonant"))
}

func TestCheckRunOnSentence(t *testing.T) {
	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString(words[i%len(words)])
		b.WriteString(" ")
	}
	b.WriteString("end.")

	res := Check(b.String(), segment.DocumentOther)
	runOn := issuesByRule(res, "run-on-sentence")
	require.Len(t, runOn, 1)
	assert.Equal(t, SeverityMajor, runOn[0].Severity)
	assert.GreaterOrEqual(t, len(runOn[0].Text), 150)
}

func TestCheckPunctuationRules(t *testing.T) {
	text := "This line has no terminal punctuation at all\n" +
		"- bullet line without any punctuation here\n" +
		"Short line\n" +
		"Really great results!! Wait... fine.\n" +
		"However we shipped on time.\n" +
		"The launch slipped, we recovered quickly."
	res := Check(text, segment.DocumentOther)

	terminal := issuesByRule(res, "missing-terminal-punctuation")
	require.Len(t, terminal, 1)
	assert.Equal(t, "This line has no terminal punctuation at all", terminal[0].Text)
	assert.Equal(t, Span{Start: 0, End: 44}, terminal[0].Span)

	repeated := issuesByRule(res, "repeated-terminal-punctuation")
	require.Len(t, repeated, 1)
	assert.Equal(t, "!!", repeated[0].Text)

	intro := issuesByRule(res, "missing-intro-comma")
	require.Len(t, intro, 1)
	assert.Equal(t, "However", intro[0].Text)
	assert.Equal(t, []string{"However,"}, intro[0].Replacements)

	splice := issuesByRule(res, "comma-splice")
	require.Len(t, splice, 1)
	assert.Equal(t, ",", splice[0].Text)

	for _, issue := range append(append(terminal, repeated...), append(intro, splice...)...) {
		assert.Equal(t, TypePunctuation, issue.Type)
	}
}

func TestCheckStyleOnlyForResumeAndCoverLetter(t *testing.T) {
	text := "This is gonna be a hard worker story where I helped ship things."

	for _, docType := range []segment.DocumentType{segment.DocumentResume, segment.DocumentCoverLetter} {
		res := Check(text, docType)
		assert.Len(t, issuesByRule(res, "informal-language"), 1, docType)
		assert.Len(t, issuesByRule(res, "cliche"), 1, docType)
		weak := issuesByRule(res, "weak-verb")
		require.Len(t, weak, 1, docType)
		assert.Equal(t, []string{"enabled", "facilitated", "supported"}, weak[0].Replacements)
	}

	for _, docType := range []segment.DocumentType{segment.DocumentOther, "memo"} {
		res := Check(text, docType)
		assert.Zero(t, res.Counts.Style, docType)
	}
}

func TestCheckDuplicateSentenceAllTypes(t *testing.T) {
	res := Check("We ship every week. We ship every week.", segment.DocumentOther)

	dup := issuesByRule(res, "duplicate-sentence")
	require.Len(t, dup, 1)
	assert.Equal(t, Span{Start: 20, End: 39}, dup[0].Span)
}

func TestCheckRepeatedSentenceScenario(t *testing.T) {
	text := "I worked on a team that recieve awards. I worked on a team that recieve awards."
	res := Check(text, segment.DocumentResume)

	spelling := issuesByRule(res, "misspelling")
	require.GreaterOrEqual(t, len(spelling), 2)
	for _, issue := range spelling {
		assert.Equal(t, "recieve", issue.Text)
		assert.Equal(t, []string{"receive"}, issue.Replacements)
	}
	assert.Empty(t, issuesByRule(res, "missing-terminal-punctuation"))
	assert.Len(t, issuesByRule(res, "duplicate-sentence"), 1)
	assert.Less(t, res.Score, PassThreshold)
	assert.Equal(t, 61, res.Score)
	assert.False(t, res.IsValid)
}

func TestCheckCleanDocumentScoresFull(t *testing.T) {
	for _, docType := range []segment.DocumentType{segment.DocumentOther, segment.DocumentResume} {
		res := Check(cleanText, docType)

		assert.Greater(t, res.WordCount, 100)
		assert.Empty(t, res.Issues, "issues: %+v", res.Issues)
		assert.Equal(t, 100, res.Score)
		assert.True(t, res.IsValid)
	}
}

func TestCheckBonusesAbsorbMinorStyleIssues(t *testing.T) {
	res := Check(cleanText+" We worked on tooling for the team.", segment.DocumentResume)

	require.Len(t, res.Issues, 1)
	assert.Equal(t, "weak-verb", res.Issues[0].RuleID)
	assert.Equal(t, 100, res.Score)
}

func TestCheckEmptyInputIsNeutral(t *testing.T) {
	for _, text := range []string{"", "   \n\t"} {
		res := Check(text, segment.DocumentResume)

		assert.NotNil(t, res.Issues)
		assert.Empty(t, res.Issues)
		assert.Equal(t, Counts{}, res.Counts)
		assert.Equal(t, NeutralScore, res.Score)
		assert.False(t, res.IsValid)
		assert.Zero(t, res.WordCount)
	}
}

func TestCheckSpansStayInsideText(t *testing.T) {
	texts := []string{
		"Café résumé recieve teh teh team. It's own goal was an car!!\nAnother long line with ünïcödé characters and no end",
		"However we worked on stuff, we helped a lot of guys.\n\n- recieve\nBecause naïve.",
		cleanText,
	}
	for _, text := range texts {
		for _, docType := range []segment.DocumentType{segment.DocumentResume, segment.DocumentOther} {
			res := Check(text, docType)
			for _, issue := range res.Issues {
				require.True(t, issue.Span.Valid(len(text)), "span %+v outside text", issue.Span)
				assert.Equal(t, text[issue.Span.Start:issue.Span.End], issue.Text)
			}
			assert.GreaterOrEqual(t, res.Score, 0)
			assert.LessOrEqual(t, res.Score, 100)
		}
	}
}

func TestCheckIsIdempotent(t *testing.T) {
	text := "I worked on a team that recieve awards. However we don't need nothing"

	first := Check(text, segment.DocumentResume)
	second := Check(text, segment.DocumentResume)

	assert.Equal(t, first, second)
}

func TestCheckIssuesSortedByPosition(t *testing.T) {
	res := Check("However we recieve teh package. It's own way", segment.DocumentResume)

	require.NotEmpty(t, res.Issues)
	for i := 1; i < len(res.Issues); i++ {
		assert.LessOrEqual(t, res.Issues[i-1].Span.Start, res.Issues[i].Span.Start)
	}
}

func TestScore(t *testing.T) {
	cases := []struct {
		name      string
		counts    Counts
		wordCount int
		want      int
	}{
		{"deductions without bonus", Counts{Spelling: 1, Grammar: 1, Style: 1, Critical: 1, Major: 1, Minor: 1, Total: 3}, 200, 83},
		{"both bonuses clamp", Counts{}, 150, 100},
		{"short text no bonus", Counts{Style: 1, Minor: 1, Total: 1}, 50, 98},
		{"density penalty", Counts{Style: 10, Minor: 10, Total: 10}, 50, 70},
		{"floor", Counts{Spelling: 20, Critical: 20, Total: 20}, 10, 0},
		{"grammar bonus only", Counts{Spelling: 1, Critical: 1, Total: 1}, 150, 95},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Score(tc.counts, tc.wordCount))
		})
	}
}

func TestRuleTablesAreWellFormed(t *testing.T) {
	ids := map[string]bool{}
	for _, rule := range append(GrammarRules(), PunctuationRules()...) {
		assert.NotEmpty(t, rule.ID)
		assert.False(t, ids[rule.ID], "duplicate rule id %s", rule.ID)
		ids[rule.ID] = true
		assert.LessOrEqual(t, rule.Group, rule.Pattern.NumSubexp(), rule.ID)
		assert.NotEmpty(t, rule.Message, rule.ID)
	}
}

func TestEnabledFallsBackToGenericSubset(t *testing.T) {
	assert.True(t, Enabled(segment.DocumentResume, CheckWeakVerbs))
	assert.False(t, Enabled(segment.DocumentOther, CheckWeakVerbs))
	assert.False(t, Enabled("memo", CheckInformal))
	assert.True(t, Enabled("memo", CheckSpelling))
}

func TestEnabledAcceptsNamedChecks(t *testing.T) {
	checks := []CheckName{
		CheckSpelling, CheckRepeatedWords, CheckGrammar, CheckPunctuation,
		CheckInformal, CheckCliches, CheckWeakVerbs, CheckDuplicateSentences,
	}
	for _, check := range checks {
		assert.True(t, Enabled(segment.DocumentResume, check), string(check))
	}
	assert.False(t, Enabled(segment.DocumentResume, CheckName("unknown")))
}

func TestAdjacentFragmentsAreEachReported(t *testing.T) {
	text := "Because we shipped it. Because it worked. We then moved on.\nAlthough late."
	res := Check(text, segment.DocumentOther)

	found := issuesByRule(res, "sentence-fragment")
	require.Len(t, found, 3, "issues: %+v", res.Issues)
	assert.Equal(t, "Because we shipped it.", found[0].Text)
	assert.Equal(t, Span{Start: 23, End: 41}, found[1].Span)
	assert.Equal(t, "Because it worked.", found[1].Text)
	assert.Equal(t, "Although late.", found[2].Text)
}
