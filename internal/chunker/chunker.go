// Package chunker splits raw portfolio text into bounded, semantically
// coherent chunk texts suitable for embedding.
package chunker

import (
	"regexp"
	"strings"

	"github.com/folio-labs/folio-cli/internal/logger"
)

// DefaultMaxChunkLength is the maximum chunk length in characters.
const DefaultMaxChunkLength = 500

// DefaultMinChunkLength is the minimum length a chunk must reach after
// post-processing to be kept.
const DefaultMinChunkLength = 50

// maxRepeatRun is the longest accepted run of one repeated character.
// Longer runs mark a chunk as garbage (ASCII art, separator lines).
const maxRepeatRun = 10

var (
	// paragraphs are separated by blank lines.
	paragraphSplit = regexp.MustCompile(`\n\s*\n`)

	// sentence-like units end in terminal punctuation, retained.
	sentenceSplit = regexp.MustCompile(`[^.!?]+[.!?]+`)

	// section headers start a fresh chunk so unrelated topical sections
	// are not merged.
	sectionHeader = regexp.MustCompile(`(?i)^(skills|expertise|technologies|tools|languages|frameworks|databases|platforms)`)

	// leading bullet or numbering markers stripped during post-processing.
	leadingMarkers = regexp.MustCompile(`^[\d\s•\-\*]+`)

	// chunks of only digits, whitespace, dashes and asterisks are noise.
	noiseOnly = regexp.MustCompile(`^[\d\s\-\*]+$`)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Chunker splits text into chunk texts. The zero configuration matches the
// portfolio ingestion defaults; sizes are tunable for tests.
type Chunker struct {
	maxLen int
	minLen int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxLength sets the maximum chunk length in characters.
func WithMaxLength(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.maxLen = n
		}
	}
}

// WithMinLength sets the minimum accepted chunk length in characters.
func WithMinLength(n int) Option {
	return func(c *Chunker) {
		if n >= 0 {
			c.minLen = n
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		maxLen: DefaultMaxChunkLength,
		minLen: DefaultMinChunkLength,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Split divides text into chunk texts. It is a pure function of its input:
// no randomness, no external state. Invalid input (empty or blank text)
// yields an empty slice with a logged warning, never an error.
func (c *Chunker) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		logger.Warn("chunker: empty input, nothing to split")
		return nil
	}

	var chunks []string
	for _, paragraph := range splitParagraphs(text) {
		chunks = append(chunks, c.splitParagraph(paragraph)...)
	}

	return postProcess(chunks, c.minLen)
}

// splitParagraphs divides raw text on blank-line boundaries and discards
// empty paragraphs. Whitespace inside each paragraph is collapsed to single
// spaces afterwards, so the blank lines are still visible here.
func splitParagraphs(text string) []string {
	raw := paragraphSplit.Split(text, -1)
	paragraphs := make([]string, 0, len(raw))
	for _, p := range raw {
		p = Normalize(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// splitParagraph accumulates sentence-like units into chunks of at most
// maxLen characters. Section headers flush the running buffer first so they
// begin a fresh chunk.
func (c *Chunker) splitParagraph(paragraph string) []string {
	units := sentenceSplit.FindAllString(paragraph, -1)
	if len(units) == 0 {
		// No terminal punctuation: the whole paragraph is one unit.
		units = []string{paragraph}
	}

	var chunks []string
	var buf []string
	bufLen := 0

	flush := func() {
		if len(buf) > 0 {
			chunks = append(chunks, strings.Join(buf, " "))
			buf = nil
			bufLen = 0
		}
	}

	for _, unit := range units {
		unit = strings.TrimSpace(unit)
		if unit == "" {
			continue
		}

		if sectionHeader.MatchString(unit) {
			flush()
		}
		if bufLen+len(unit) > c.maxLen {
			flush()
		}

		buf = append(buf, unit)
		bufLen += len(unit)
	}
	flush()

	return chunks
}

// postProcess strips leading bullet markers, re-normalises whitespace and
// drops chunks that are too short or garbage.
func postProcess(chunks []string, minLen int) []string {
	kept := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		chunk = leadingMarkers.ReplaceAllString(strings.TrimSpace(chunk), "")
		chunk = Normalize(chunk)

		switch {
		case chunk == "":
		case len(chunk) < minLen:
		case noiseOnly.MatchString(chunk):
		case hasLongRun(chunk, maxRepeatRun):
		default:
			kept = append(kept, chunk)
		}
	}
	return kept
}

// Normalize collapses whitespace runs to single spaces and trims. It is
// idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// hasLongRun reports whether s contains a run of more than limit identical
// consecutive runes. RE2 has no backreferences, so this is a manual scan.
func hasLongRun(s string, limit int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
			if run > limit {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}
