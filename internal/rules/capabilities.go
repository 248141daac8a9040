package rules

import "resume-quality/internal/segment"

// CheckName names one detection routine that can be switched per document type.
type CheckName string

const (
	CheckSpelling           CheckName = "spelling"
	CheckRepeatedWords      CheckName = "repeated_words"
	CheckGrammar            CheckName = "grammar"
	CheckPunctuation        CheckName = "punctuation"
	CheckInformal           CheckName = "informal_language"
	CheckCliches            CheckName = "cliches"
	CheckWeakVerbs          CheckName = "weak_verbs"
	CheckDuplicateSentences CheckName = "duplicate_sentences"
)

type capability struct {
	docType segment.DocumentType
	check   CheckName
}

// capabilities is the full (documentType, check) table. Anything absent is disabled.
var capabilities = map[capability]bool{
	{segment.DocumentResume, CheckSpelling}:           true,
	{segment.DocumentResume, CheckRepeatedWords}:      true,
	{segment.DocumentResume, CheckGrammar}:            true,
	{segment.DocumentResume, CheckPunctuation}:        true,
	{segment.DocumentResume, CheckInformal}:           true,
	{segment.DocumentResume, CheckCliches}:            true,
	{segment.DocumentResume, CheckWeakVerbs}:          true,
	{segment.DocumentResume, CheckDuplicateSentences}: true,

	{segment.DocumentCoverLetter, CheckSpelling}:           true,
	{segment.DocumentCoverLetter, CheckRepeatedWords}:      true,
	{segment.DocumentCoverLetter, CheckGrammar}:            true,
	{segment.DocumentCoverLetter, CheckPunctuation}:        true,
	{segment.DocumentCoverLetter, CheckInformal}:           true,
	{segment.DocumentCoverLetter, CheckCliches}:            true,
	{segment.DocumentCoverLetter, CheckWeakVerbs}:          true,
	{segment.DocumentCoverLetter, CheckDuplicateSentences}: true,

	{segment.DocumentOther, CheckSpelling}:           true,
	{segment.DocumentOther, CheckRepeatedWords}:      true,
	{segment.DocumentOther, CheckGrammar}:            true,
	{segment.DocumentOther, CheckPunctuation}:        true,
	{segment.DocumentOther, CheckInformal}:           false,
	{segment.DocumentOther, CheckCliches}:            false,
	{segment.DocumentOther, CheckWeakVerbs}:          false,
	{segment.DocumentOther, CheckDuplicateSentences}: true,
}

// Enabled reports whether a check runs for the document type. Unknown types use the
// generic subset.
func Enabled(docType segment.DocumentType, check CheckName) bool {
	switch docType {
	case segment.DocumentResume, segment.DocumentCoverLetter:
	default:
		docType = segment.DocumentOther
	}
	return capabilities[capability{docType, check}]
}
