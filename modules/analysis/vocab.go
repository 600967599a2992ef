package analysis

import (
	"regexp"
	"strings"
)

// The category counters match diagnoses against these fixed vocabularies,
// case-insensitively, anywhere in the diagnosis text.
var (
	oncologyTerms = []string{
		"cancer", "tumor", "tumour", "carcinoma", "sarcoma",
		"lymphoma", "leukemia", "melanoma", "oncolog", "metastas",
	}

	neurologyTerms = []string{
		"neuro", "brain", "stroke", "alzheimer", "parkinson",
		"epilep", "dementia", "sclerosis", "meningitis",
	}
)

var (
	oncologyPattern  = vocabularyPattern(oncologyTerms)
	neurologyPattern = vocabularyPattern(neurologyTerms)

	oncologyRegex  = regexp.MustCompile("(?i)" + oncologyPattern)
	neurologyRegex = regexp.MustCompile("(?i)" + neurologyPattern)
)

// vocabularyPattern joins terms into an alternation usable both by Go's
// regexp and as a MongoDB $regex value with the "i" option.
func vocabularyPattern(terms []string) string {
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(term)
	}
	return strings.Join(quoted, "|")
}

// IsOncology reports whether the diagnosis matches the oncology vocabulary.
func IsOncology(diagnosis string) bool {
	return oncologyRegex.MatchString(diagnosis)
}

// IsNeurology reports whether the diagnosis matches the neurology vocabulary.
func IsNeurology(diagnosis string) bool {
	return neurologyRegex.MatchString(diagnosis)
}
