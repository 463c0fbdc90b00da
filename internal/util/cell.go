package util

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	reLineBreak   = regexp.MustCompile(`(?i)<br\s*/?>`)
	reIndentedNL  = regexp.MustCompile(`\n[ ]*`)
	reFootnote    = regexp.MustCompile(`\*\*\*`)
	reSeeNote     = regexp.MustCompile(`(?i) *\(See Note.*?\)`)
	reSuperscript = regexp.MustCompile(`(?is)<sup[^>]*>(.*?)</sup>`)
	reDigits      = regexp.MustCompile(`^[0-9]+$`)
)

// Step is a single named text transformation applied to a table cell.
type Step struct {
	Name  string
	Apply func(string) string
}

// Pipeline runs its steps in order.
type Pipeline []Step

func (p Pipeline) Run(input string) string {
	out := input
	for _, step := range p {
		out = step.Apply(out)
	}
	return out
}

var (
	StripLineBreaks   = Step{Name: "strip_line_breaks", Apply: func(s string) string { return reLineBreak.ReplaceAllString(s, "") }}
	CollapseNewlines  = Step{Name: "collapse_newlines", Apply: collapseNewlines}
	StripFootnotes    = Step{Name: "strip_footnotes", Apply: func(s string) string { return reFootnote.ReplaceAllString(s, "") }}
	StripSeeNotes     = Step{Name: "strip_see_notes", Apply: func(s string) string { return reSeeNote.ReplaceAllString(s, "") }}
	SuperscriptPowers = Step{Name: "superscript_powers", Apply: func(s string) string { return reSuperscript.ReplaceAllString(s, "**$1") }}
	LowerCase         = Step{Name: "lower_case", Apply: func(s string) string { return cases.Lower(language.Und).String(s) }}
	DecodeEntities    = Step{Name: "decode_entities", Apply: html.UnescapeString}
	Trim              = Step{Name: "trim", Apply: strings.TrimSpace}
)

var (
	IdentifierPipeline = Pipeline{StripLineBreaks, Trim}
	NamePipeline       = Pipeline{CollapseNewlines, StripLineBreaks, StripFootnotes, StripSeeNotes, DecodeEntities, Trim}
	UnitPipeline       = Pipeline{SuperscriptPowers, StripLineBreaks, DecodeEntities, Trim}
	ShortNamePipeline  = Pipeline{StripLineBreaks, CollapseNewlines, LowerCase, DecodeEntities, Trim}
)

func collapseNewlines(s string) string {
	s = reIndentedNL.ReplaceAllString(s, " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// NormalizeIdentifier cleans an identifier cell. ok reports whether the
// cleaned text is a plain non-negative integer; text is always the cleaned cell.
func NormalizeIdentifier(raw string) (id int, text string, ok bool) {
	text = IdentifierPipeline.Run(raw)
	if !reDigits.MatchString(text) {
		return 0, text, false
	}
	id, err := strconv.Atoi(text)
	if err != nil {
		return 0, text, false
	}
	return id, text, true
}

func NormalizeName(raw string) string {
	return NamePipeline.Run(raw)
}

// NormalizeUnit turns superscript markup into power notation, so that
// "m<sup>2</sup>" becomes "m**2".
func NormalizeUnit(raw string) string {
	return UnitPipeline.Run(raw)
}

func NormalizeShortName(raw string) string {
	return ShortNamePipeline.Run(raw)
}
