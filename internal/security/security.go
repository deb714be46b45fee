// Package security scans fetched artifact bodies for the fixed set of
// injection and mimicry substrings the report surfaces as flags. Detection
// is deliberately substring-only: no LLM, no heuristics, nothing that could
// itself be tricked by the content it's scanning.
package security

import "strings"

type Flag string

const (
	FlagPromptInjection    Flag = "PROMPT_INJECTION_DETECTED"
	FlagSchemaMimicry      Flag = "SCHEMA_MIMICRY_DETECTED"
	FlagInstructionInHTML  Flag = "INSTRUCTION_IN_HTML_DETECTED"
)

var promptInjectionTriggers = []string{
	"ignore previous instructions",
	"you are now",
	"system:",
	"assistant:",
	"human:",
}

// The first trigger is the quoted JSON key, double quotes included, so a
// plain-English mention of a schema version never fires it.
var schemaMimicryTriggers = []string{
	`"schema_version"`,
	"output schema",
	"strict json",
	"error schema",
}

var instructionInHTMLTriggers = []string{
	"## system prompt",
	"critical security directive",
	"analysis rules",
}

// checklist order: the fixed order flags are emitted in, independent of
// which substring within a flag's trigger set matched first.
var checklist = []struct {
	flag     Flag
	triggers []string
}{
	{FlagPromptInjection, promptInjectionTriggers},
	{FlagSchemaMimicry, schemaMimicryTriggers},
	{FlagInstructionInHTML, instructionInHTMLTriggers},
}

// Scan joins every supplied body into one lower-cased haystack and returns
// the flags whose trigger substrings appear anywhere in it, in checklist
// order. A flag fires at most once regardless of how many triggers or
// bodies matched it.
func Scan(bodies ...string) []Flag {
	haystack := strings.ToLower(strings.Join(bodies, "\n"))

	var flags []Flag
	for _, entry := range checklist {
		for _, trigger := range entry.triggers {
			if strings.Contains(haystack, trigger) {
				flags = append(flags, entry.flag)
				break
			}
		}
	}
	return flags
}
