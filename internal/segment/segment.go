// Package segment splits raw résumé and cover-letter text into named sections.
package segment

import (
	"regexp"
	"strings"
)

// contactLineWindow is how many leading non-blank lines may form the implicit contact block.
const contactLineWindow = 5

type headerPattern struct {
	section Section
	re      *regexp.Regexp
}

// headerPatterns are tested in order and the first match wins. The order is
// load-bearing: it decides the section for a line that more than one pattern accepts.
var headerPatterns = []headerPattern{
	{SectionContact, regexp.MustCompile(`(?i)^(contact( information| info| details)?|personal (information|details))$`)},
	{SectionSummary, regexp.MustCompile(`(?i)^((professional|career|executive) )?(summary|profile|objective|about me)$`)},
	{SectionExperience, regexp.MustCompile(`(?i)^((professional|work|relevant) )?(experience|employment( history)?|work history|career history)$`)},
	{SectionEducation, regexp.MustCompile(`(?i)^(education( (and|&) training)?|academic (background|history))$`)},
	{SectionSkills, regexp.MustCompile(`(?i)^((technical|core|key) )?(skills|competencies|expertise|technologies)( (and|&) (tools|technologies))?$`)},
	{SectionCertifications, regexp.MustCompile(`(?i)^(certifications?|licenses?( (and|&) certifications?)?|credentials)$`)},
	{SectionProjects, regexp.MustCompile(`(?i)^((personal|key|selected|side|technical) )?projects$`)},
}

var (
	bulletPrefix = regexp.MustCompile(`^\s*([-*•▪◦●‣·–]|\d+[.)])\s*`)
	yearToken    = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	monthYear    = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+\d{4}\b`)
)

// MatchHeader returns the section a line introduces, if any.
func MatchHeader(line string) (Section, bool) {
	trimmed := strings.Trim(strings.TrimSpace(line), "#*=_ ")
	trimmed = strings.TrimSpace(strings.TrimRight(trimmed, ": "))
	if trimmed == "" || len(trimmed) > 40 {
		return "", false
	}
	for _, p := range headerPatterns {
		if p.re.MatchString(trimmed) {
			return p.section, true
		}
	}
	return "", false
}

// StartsItem reports whether a line opens a new item inside a list-like section.
func StartsItem(line string) bool {
	return bulletPrefix.MatchString(line) || yearToken.MatchString(line) || monthYear.MatchString(line)
}

// Segment converts raw text into a Document. It never fails; blank input yields an
// empty Document with zeroed metadata.
func Segment(text string, docType DocumentType) Document {
	doc := Document{Type: docType, Metadata: ExtractMetadata(text)}
	if strings.TrimSpace(text) == "" {
		return doc
	}

	var (
		current    Section
		open       bool
		buf        []string
		contact    []string
		nonBlank   int
		sections   []SectionContent
		sectionIdx = make(map[Section]int)
	)

	flush := func() {
		if !open {
			return
		}
		content := build(current, buf)
		if idx, ok := sectionIdx[current]; ok {
			sections[idx] = merge(sections[idx], content)
		} else {
			sectionIdx[current] = len(sections)
			sections = append(sections, content)
		}
		buf = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonBlank++
		if section, ok := MatchHeader(trimmed); ok {
			flush()
			current = section
			open = true
			continue
		}
		if !open {
			if nonBlank <= contactLineWindow {
				contact = append(contact, trimmed)
			}
			continue
		}
		buf = append(buf, trimmed)
	}
	flush()

	doc.Sections = ParsedSections{
		Sections: sections,
		Contact:  strings.Join(contact, "\n"),
	}
	return doc
}

func build(section Section, lines []string) SectionContent {
	content := SectionContent{Name: section}
	if !section.IsList() {
		content.Text = strings.Join(lines, "\n")
		return content
	}
	content.Items = itemize(lines)
	return content
}

func itemize(lines []string) []string {
	var items []string
	for _, line := range lines {
		if len(items) == 0 || StartsItem(line) {
			items = append(items, stripBullet(line))
			continue
		}
		last := len(items) - 1
		items[last] = items[last] + " " + line
	}
	return items
}

func stripBullet(line string) string {
	if loc := bulletPrefix.FindStringIndex(line); loc != nil && !yearAt(line, loc) {
		return strings.TrimSpace(line[loc[1]:])
	}
	return strings.TrimSpace(line)
}

// yearAt guards against treating "2019." style numbering as a bullet.
func yearAt(line string, loc []int) bool {
	return yearToken.MatchString(strings.TrimSpace(line[loc[0]:loc[1]]))
}

func merge(existing, next SectionContent) SectionContent {
	if existing.Name.IsList() {
		existing.Items = append(existing.Items, next.Items...)
		return existing
	}
	switch {
	case existing.Text == "":
		existing.Text = next.Text
	case next.Text != "":
		existing.Text = existing.Text + "\n" + next.Text
	}
	return existing
}

// SkillItems splits the skills section into individual skill strings.
func SkillItems(sections ParsedSections) []string {
	s, ok := sections.Get(SectionSkills)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range s.Items {
		if idx := strings.Index(item, ":"); idx >= 0 && idx < len(item)-1 {
			item = item[idx+1:]
		}
		for _, part := range strings.FieldsFunc(item, isSkillDelimiter) {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

func isSkillDelimiter(r rune) bool {
	switch r {
	case ',', ';', '|', '•', '/', '·':
		return true
	default:
		return false
	}
}
