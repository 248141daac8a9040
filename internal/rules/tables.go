package rules

import (
	"regexp"
	"sort"
	"strings"
)

// PatternRule is one row of a rule table. Message, Suggestion and Replace are
// regexp templates ($1, ${2}) expanded against the match; "{fix}" is replaced by the
// Replacements entry for the lower-cased located text.
type PatternRule struct {
	ID           string
	Type         IssueType
	Severity     Severity
	Pattern      *regexp.Regexp
	Group        int
	Message      string
	Suggestion   string
	Replace      string
	Replacements map[string]string
	Skip         func(groups []string) bool
	// PerSentence matches Pattern against each sentence on its own, so ^ anchors at
	// the sentence start.
	PerSentence  bool
}

// misspellings maps common misspelled tokens (lower case) to their correction.
var misspellings = map[string]string{
	"recieve":      "receive",
	"recieved":     "received",
	"acheive":      "achieve",
	"acheived":     "achieved",
	"acheivement":  "achievement",
	"accomodate":   "accommodate",
	"adress":       "address",
	"begining":     "beginning",
	"beleive":      "believe",
	"calender":     "calendar",
	"collegue":     "colleague",
	"comittee":     "committee",
	"commited":     "committed",
	"definately":   "definitely",
	"developement": "development",
	"enviroment":   "environment",
	"existance":    "existence",
	"experiance":   "experience",
	"familar":      "familiar",
	"foriegn":      "foreign",
	"goverment":    "government",
	"guarentee":    "guarantee",
	"independant":  "independent",
	"knowlege":     "knowledge",
	"liason":       "liaison",
	"maintainance": "maintenance",
	"managment":    "management",
	"millenium":    "millennium",
	"neccessary":   "necessary",
	"occured":      "occurred",
	"occurence":    "occurrence",
	"oppurtunity":  "opportunity",
	"performace":   "performance",
	"persue":       "pursue",
	"posession":    "possession",
	"prefered":     "preferred",
	"proffesional": "professional",
	"publically":   "publicly",
	"recomend":     "recommend",
	"refered":      "referred",
	"relevent":     "relevant",
	"resposible":   "responsible",
	"seperate":     "separate",
	"sucessful":    "successful",
	"succesful":    "successful",
	"supercede":    "supersede",
	"teh":          "the",
	"threshhold":   "threshold",
	"untill":       "until",
	"wich":         "which",
	"writting":     "writing",
}

// doubledWords may legitimately appear twice in a row.
var doubledWords = map[string]bool{
	"had":  true,
	"that": true,
	"do":   true,
	"very": true,
	"so":   true,
	"bye":  true,
}

var redundantPhrases = map[string]string{
	"end result":           "result",
	"past history":         "history",
	"future plans":         "plans",
	"completely finished":  "finished",
	"absolutely essential": "essential",
	"basic fundamentals":   "fundamentals",
	"each and every":       "every",
	"free gift":            "gift",
	"added bonus":          "bonus",
	"close proximity":      "proximity",
	"final outcome":        "outcome",
	"join together":        "join",
	"collaborate together": "collaborate",
	"repeat again":         "repeat",
	"advance planning":     "planning",
	"new innovation":       "innovation",
	"in order to":          "to",
}

// grammarRules run in order over the full text.
var grammarRules = []PatternRule{
	{
		ID:         "double-negative",
		Type:       TypeGrammar,
		Severity:   SeverityMajor,
		Pattern:    regexp.MustCompile(`(?i)\b(don['’]t|doesn['’]t|didn['’]t|can['’]t|cannot|won['’]t|isn['’]t|aren['’]t|wasn['’]t|weren['’]t|never)\s+(?:\w+\s+)?(no|nothing|nobody|none|nowhere|neither)\b`),
		Message:    `Double negative "$0"`,
		Suggestion: `Keep a single negative, e.g. replace "${2}" with its positive form`,
	},
	{
		ID:         "its-possessive",
		Type:       TypeGrammar,
		Severity:   SeverityMajor,
		Pattern:    regexp.MustCompile(`(?i)\b(it['’]s)\s+(own|purpose|team|users|customers|clients|product|products|goal|goals|mission|performance|value|size|scope|members|employees)\b`),
		Group:      1,
		Message:    `"${1}" means "it is"; the possessive is "its"`,
		Suggestion: `Use "its ${2}"`,
		Replace:    "its",
	},
	{
		ID:         "article-a-before-vowel",
		Type:       TypeGrammar,
		Severity:   SeverityMinor,
		Pattern:    regexp.MustCompile(`\b([Aa])\s+([aeiouAEIOU]\w*)`),
		Message:    `Use "an" before the vowel sound in "${2}"`,
		Suggestion: `Use "${1}n ${2}"`,
		Replace:    "${1}n ${2}",
		Skip:       skipWordPrefixes(2, "uni", "use", "usu", "uti", "ure", "uro", "ubi", "eu", "one", "once"),
	},
	{
		ID:         "article-an-before-consonant",
		Type:       TypeGrammar,
		Severity:   SeverityMinor,
		Pattern:    regexp.MustCompile(`\b([Aa])n\s+([b-df-hj-np-tv-zB-DF-HJ-NP-TV-Z][a-z]+)\b`),
		Message:    `Use "a" before the consonant sound in "${2}"`,
		Suggestion: `Use "${1} ${2}"`,
		Replace:    "${1} ${2}",
		Skip:       skipWordPrefixes(2, "hour", "honest", "honor", "honour", "heir", "herb"),
	},
	{
		ID:           "redundant-phrase",
		Type:         TypeGrammar,
		Severity:     SeverityMinor,
		Pattern:      regexp.MustCompile(`(?i)\b(end result|past history|future plans|completely finished|absolutely essential|basic fundamentals|each and every|free gift|added bonus|close proximity|final outcome|join together|collaborate together|repeat again|advance planning|new innovation|in order to)\b`),
		Group:        1,
		Message:      `Redundant phrase "${1}"`,
		Suggestion:   `Replace with "{fix}"`,
		Replacements: redundantPhrases,
	},
	{
		ID:          "sentence-fragment",
		Type:        TypeGrammar,
		Severity:    SeverityMinor,
		Pattern:     regexp.MustCompile(`^\s*((?:Because|Although|Though|Whereas|Unless)\b[^.!?,;\n]{0,80}[.!?])`),
		Group:       1,
		PerSentence: true,
		Message:     "Possible sentence fragment: a subordinate clause stands alone",
		Suggestion:  "Attach the clause to a main clause or rewrite it as a complete sentence",
	},
	{
		ID:         "run-on-sentence",
		Type:       TypeGrammar,
		Severity:   SeverityMajor,
		Pattern:    regexp.MustCompile(`[^.!?;\n]{150,}`),
		Message:    "Sentence runs for 150 or more characters without a break",
		Suggestion: "Split this sentence into shorter sentences",
	},
	{
		ID:         "missing-oxford-comma",
		Type:       TypeGrammar,
		Severity:   SeverityMinor,
		Pattern:    regexp.MustCompile(`\b(\w+), (\w+) (and|or) (\w+)\b`),
		Message:    `Missing serial comma before "${3}"`,
		Suggestion: `Use "${1}, ${2}, ${3} ${4}"`,
		Replace:    "${1}, ${2}, ${3} ${4}",
	},
}

// punctuationRules run over the full text; the per-line terminal punctuation check
// lives in the engine.
var punctuationRules = []PatternRule{
	{
		ID:         "repeated-terminal-punctuation",
		Type:       TypePunctuation,
		Severity:   SeverityMinor,
		Pattern:    regexp.MustCompile(`[.!?]{2,}`),
		Message:    `Repeated punctuation "$0"`,
		Suggestion: "Use a single punctuation mark",
		Skip: func(groups []string) bool {
			return groups[0] == "..."
		},
	},
	{
		ID:         "comma-splice",
		Type:       TypePunctuation,
		Severity:   SeverityMinor,
		Pattern:    regexp.MustCompile(`(?i)\b\w+(,)\s+(i|he|she|it|we|they)\s+(am|is|are|was|were|have|has|had|will|can|\w+ed)\b`),
		Group:      1,
		Message:    "Possible comma splice joining two independent clauses",
		Suggestion: "Replace the comma with a period or semicolon, or add a conjunction",
		Replace:    ";",
	},
	{
		ID:         "missing-intro-comma",
		Type:       TypePunctuation,
		Severity:   SeverityMinor,
		Pattern:    regexp.MustCompile(`(?m)(?:^|[.!?]\s+)(However|Therefore|Additionally|Furthermore|Moreover|Consequently|Meanwhile|Nevertheless|Ultimately|Finally)\s+\w`),
		Group:      1,
		Message:    `Add a comma after the introductory word "${1}"`,
		Suggestion: `Use "${1},"`,
		Replace:    "${1},",
	},
}

var informalWords = []string{
	"gonna", "wanna", "gotta", "kinda", "sorta", "stuff", "awesome", "cool",
	"super", "totally", "basically", "lots of", "a lot of", "okay", "yeah", "guys",
}

var cliches = []string{
	"team player", "hard worker", "hard-working", "go-getter", "think outside the box",
	"detail-oriented", "results-driven", "self-starter", "synergy", "proven track record",
	"passionate about", "best of breed", "hit the ground running", "wear many hats",
	"go above and beyond", "dynamic individual",
}

// weakVerbs maps a weak verb phrase to stronger alternatives.
var weakVerbs = map[string][]string{
	"worked on":        {"developed", "built", "delivered"},
	"helped":           {"enabled", "facilitated", "supported"},
	"responsible for":  {"led", "owned", "managed"},
	"was in charge of": {"led", "directed"},
	"assisted with":    {"supported", "contributed to"},
	"handled":          {"managed", "directed"},
	"did":              {"executed", "completed"},
	"made":             {"created", "produced"},
	"got":              {"achieved", "secured"},
	"tried":            {"pursued", "tested"},
	"used":             {"leveraged", "applied"},
}

var (
	wordPattern        = regexp.MustCompile(`[A-Za-z]+(?:['’][A-Za-z]+)*`)
	sentencePattern    = regexp.MustCompile(`[^.!?\n]+[.!?]*`)
	bulletLinePattern  = regexp.MustCompile(`^([-*•▪◦●‣·–]|\d+[.)])\s`)
	informalPattern    = phrasePattern(informalWords)
	clichePattern      = phrasePattern(cliches)
	weakVerbPattern    = phrasePattern(mapKeys(weakVerbs))
	terminalMarks      = ".!?:"
	minTerminalLineLen = 20
)

// phrasePattern builds a case-insensitive, word-bounded alternation, longest phrase first.
func phrasePattern(phrases []string) *regexp.Regexp {
	sorted := append([]string(nil), phrases...)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	quoted := make([]string, len(sorted))
	for i, p := range sorted {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

func mapKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func skipWordPrefixes(group int, prefixes ...string) func([]string) bool {
	return func(groups []string) bool {
		if group >= len(groups) {
			return false
		}
		word := strings.ToLower(groups[group])
		for _, p := range prefixes {
			if strings.HasPrefix(word, p) {
				return true
			}
		}
		return false
	}
}

// Misspelling returns the correction for a misspelled token.
func Misspelling(word string) (string, bool) {
	fix, ok := misspellings[strings.ToLower(word)]
	return fix, ok
}

// GrammarRules returns a copy of the ordered grammar rule table.
func GrammarRules() []PatternRule {
	return append([]PatternRule(nil), grammarRules...)
}

// PunctuationRules returns a copy of the ordered punctuation rule table.
func PunctuationRules() []PatternRule {
	return append([]PatternRule(nil), punctuationRules...)
}
