package segment

import "strings"

// DocumentType identifies the kind of document being analyzed.
type DocumentType string

const (
	DocumentResume      DocumentType = "resume"
	DocumentCoverLetter DocumentType = "cover_letter"
	DocumentOther       DocumentType = "other"
)

// NormalizeDocumentType maps free-form input onto a known DocumentType.
// Unknown values fall back to DocumentOther.
func NormalizeDocumentType(raw string) DocumentType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "resume", "cv", "résumé":
		return DocumentResume
	case "cover_letter", "cover-letter", "coverletter", "cover letter":
		return DocumentCoverLetter
	default:
		return DocumentOther
	}
}

// Section names a recognized document section.
type Section string

const (
	SectionContact        Section = "contact"
	SectionSummary        Section = "summary"
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
	SectionCertifications Section = "certifications"
	SectionProjects       Section = "projects"
)

// IsList reports whether the section content is split into items.
func (s Section) IsList() bool {
	switch s {
	case SectionExperience, SectionEducation, SectionSkills, SectionCertifications, SectionProjects:
		return true
	default:
		return false
	}
}

// SectionContent holds the content of one section. List-like sections use Items,
// the others use Text.
type SectionContent struct {
	Name  Section  `json:"name"`
	Text  string   `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
}

// ParsedSections is the ordered result of segmentation.
type ParsedSections struct {
	Sections []SectionContent `json:"sections"`
	// Contact holds the implicit contact block found before the first header.
	Contact string `json:"contact,omitempty"`
}

// Get returns the named section.
func (p ParsedSections) Get(name Section) (SectionContent, bool) {
	for _, s := range p.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return SectionContent{}, false
}

// Has reports whether the named section was found.
func (p ParsedSections) Has(name Section) bool {
	_, ok := p.Get(name)
	return ok
}

// Names returns section names in document order.
func (p ParsedSections) Names() []string {
	out := make([]string, 0, len(p.Sections))
	for _, s := range p.Sections {
		out = append(out, string(s.Name))
	}
	return out
}

// ContactText returns the explicit contact section if present, otherwise the implicit block.
func (p ParsedSections) ContactText() string {
	if s, ok := p.Get(SectionContact); ok {
		return s.Text
	}
	return p.Contact
}

// Metadata describes surface properties of the raw text.
type Metadata struct {
	WordCount   int  `json:"wordCount"`
	LineCount   int  `json:"lineCount"`
	HasEmail    bool `json:"hasEmail"`
	HasPhone    bool `json:"hasPhone"`
	HasLinkedIn bool `json:"hasLinkedIn"`
	HasGitHub   bool `json:"hasGitHub"`
}

// Document is the segmented form of a raw document.
type Document struct {
	Type     DocumentType   `json:"documentType"`
	Sections ParsedSections `json:"sections"`
	Metadata Metadata       `json:"metadata"`
}
