// Package document defines the raw corpus document model and the lexical
// classifier that separates judicial opinions from statutes and regulations.
// Classification is a pure function of the document; no I/O happens here.
package document

import "strings"

// Type is the document category recorded in metadata or derived by the
// classifier.
type Type string

const (
	TypeCaseOpinion Type = "case_opinion"
	TypeStatute     Type = "statute"
	TypeRegulation  Type = "regulation"
	TypeUnknown     Type = "unknown"
)

// Document is one raw corpus entry: free text plus whatever metadata the
// surrounding application attached during collection.
type Document struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// MetadataType returns the document_type metadata override, if present.
func (d Document) MetadataType() (Type, bool) {
	if d.Metadata == nil {
		return TypeUnknown, false
	}
	v, ok := d.Metadata["document_type"]
	if !ok || v == "" {
		return TypeUnknown, false
	}
	return Type(v), true
}

// caseIndicators are lexical markers of a judicial opinion.  Each occurrence
// contributes one point to the case score.
var caseIndicators = []string{
	" v. ",
	"opinion",
	"plaintiff",
	"defendant",
	"appellant",
	"appellee",
	"petitioner",
	"respondent",
	"holding",
	"we hold",
	"judgment",
	"court of appeals",
	"district court",
	"supreme court",
	"affirmed",
	"reversed",
	"remanded",
}

// nonCaseIndicators are lexical markers of statutes and regulations.
var nonCaseIndicators = []string{
	"u.s.c.",
	"c.f.r.",
	"public law",
	"stat.",
	"code section",
	"shall mean",
	"is amended by",
	"regulation",
	"subsection (",
	"paragraph (",
	"this chapter",
	"this title",
	"promulgated",
}

// IsCaseOpinion reports whether doc is a judicial opinion.
//
// A document_type metadata entry overrides the lexical heuristic entirely.
// Otherwise the classifier counts case-indicator terms against non-case
// indicators over the lowercased title+content and classifies as a case when
// the case score strictly exceeds the non-case score.  Deterministic and free
// of side effects.
func IsCaseOpinion(doc Document) bool {
	if t, ok := doc.MetadataType(); ok {
		return t == TypeCaseOpinion
	}

	text := strings.ToLower(doc.Title + " " + doc.Content)
	caseScore := 0
	for _, ind := range caseIndicators {
		caseScore += strings.Count(text, ind)
	}
	nonCaseScore := 0
	for _, ind := range nonCaseIndicators {
		nonCaseScore += strings.Count(text, ind)
	}
	return caseScore > nonCaseScore
}

// Classify returns the derived document Type.
func Classify(doc Document) Type {
	if t, ok := doc.MetadataType(); ok {
		return t
	}
	if IsCaseOpinion(doc) {
		return TypeCaseOpinion
	}
	return TypeStatute
}
