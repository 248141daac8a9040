package match

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// stopWords filters common English words that add noise to keyword matching.
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "join": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "high": true,
	"good": true, "able": true, "get": true, "set": true, "such": true,
	"years": true, "year": true, "experience": true, "strong": true, "including": true,
}

// aliases maps skill spelling variants to one canonical, lower-case name.
var aliases = map[string]string{
	"golang":              "go",
	"go lang":             "go",
	"js":                  "javascript",
	"ecmascript":          "javascript",
	"ts":                  "typescript",
	"k8s":                 "kubernetes",
	"react.js":            "react",
	"reactjs":             "react",
	"vue.js":              "vue",
	"vuejs":               "vue",
	"nodejs":              "node.js",
	"node":                "node.js",
	"postgres":            "postgresql",
	"psql":                "postgresql",
	"mongo":               "mongodb",
	"amazon web services": "aws",
	"gcp":                 "google cloud",
	"ml":                  "machine learning",
	"py":                  "python",
	"tf":                  "terraform",
	"ci cd":               "ci/cd",
	"cicd":                "ci/cd",
}

// vocabulary is the set of recognised skills, in canonical form. Job descriptions only
// contribute required keywords drawn from it.
var vocabulary = map[string]bool{
	"go": true, "python": true, "java": true, "javascript": true, "typescript": true,
	"c++": true, "c#": true, "rust": true, "ruby": true, "php": true, "kotlin": true,
	"swift": true, "scala": true, "sql": true, "bash": true,
	"react": true, "vue": true, "angular": true, "node.js": true, "django": true,
	"flask": true, "spring": true, "rails": true, "graphql": true, "grpc": true,
	"html": true, "css": true,
	"postgresql": true, "mysql": true, "mongodb": true, "redis": true, "kafka": true,
	"rabbitmq": true, "elasticsearch": true, "dynamodb": true, "cassandra": true, "sqlite": true,
	"aws": true, "azure": true, "google cloud": true, "docker": true, "kubernetes": true,
	"terraform": true, "ansible": true, "jenkins": true, "ci/cd": true, "linux": true,
	"git": true, "prometheus": true, "grafana": true, "airflow": true, "spark": true,
	"hadoop": true, "snowflake": true, "tableau": true, "excel": true,
	"machine learning": true, "deep learning": true, "data analysis": true, "pytorch": true,
	"tensorflow": true, "pandas": true, "numpy": true, "nlp": true, "ai": true,
	"microservices": true, "distributed systems": true, "system design": true,
	"agile": true, "scrum": true, "jira": true, "figma": true, "ux": true, "ui": true,
	"qa": true, "testing": true, "security": true, "networking": true,
	"project management": true, "product management": true, "leadership": true,
	"communication": true, "stakeholder management": true, "salesforce": true, "seo": true,
}

// Canonical lower-cases, trims and de-aliases one keyword.
func Canonical(keyword string) string {
	k := strings.ToLower(strings.Join(strings.Fields(keyword), " "))
	k = strings.Trim(k, ".,;:!?()[]\"'")
	if alias, ok := aliases[k]; ok {
		return alias
	}
	return k
}

// ExtractKeywords tokenizes text into a sorted, de-duplicated set of canonical keywords.
// Symbols in names such as c++, c# and node.js are kept; stop words and short tokens
// outside the vocabulary are dropped. Multi-word vocabulary phrases are recognised too.
func ExtractKeywords(text string) []string {
	set := make(map[string]bool)
	for _, token := range tokenize(text) {
		k := Canonical(token)
		if k == "" || stopWords[k] {
			continue
		}
		if len([]rune(k)) < 3 && !vocabulary[k] {
			continue
		}
		set[k] = true
	}
	for _, phrase := range phrases(text) {
		set[phrase] = true
	}
	return sortedKeys(set)
}

// VocabularyKeywords returns the recognised skills mentioned in text.
func VocabularyKeywords(text string) []string {
	var out []string
	for _, k := range ExtractKeywords(text) {
		if vocabulary[k] {
			out = append(out, k)
		}
	}
	return out
}

// InVocabulary reports whether keyword is a recognised skill.
func InVocabulary(keyword string) bool {
	return vocabulary[Canonical(keyword)]
}

func tokenize(text string) []string {
	var (
		tokens []string
		word   strings.Builder
	)
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if w != "" {
			tokens = append(tokens, w)
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// phrases finds the multi-word and slash-separated vocabulary entries, plus their
// multi-word aliases, in text.
func phrases(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for k := range vocabulary {
		if strings.ContainsAny(k, " /") && ContainsWord(lower, k) {
			out = append(out, k)
		}
	}
	for alias, canonical := range aliases {
		if strings.Contains(alias, " ") && ContainsWord(lower, alias) {
			out = append(out, canonical)
		}
	}
	return out
}

// ContainsWord reports whether needle occurs in haystack with no letter or digit
// directly before or after it. Both arguments are compared as given.
func ContainsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	for from := 0; from <= len(haystack)-len(needle); {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(needle)
		if !wordRuneBefore(haystack, start) && !wordRuneAt(haystack, end) {
			return true
		}
		from = start + 1
	}
	return false
}

func wordRuneBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return isWordRune(r)
}

func wordRuneAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
