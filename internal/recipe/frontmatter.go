package recipe

import (
	"fmt"
	"strings"
)

// ErrMalformedDocument indicates a recipe document without a well-formed
// YAML frontmatter block.
var ErrMalformedDocument = fmt.Errorf("malformed recipe document")

const fence = "---\n"

// SplitFrontmatter separates a recipe document into the raw YAML header and
// the body. The document must begin with a `---` fence and contain a
// closing fence; the header may be empty and nothing inside it is
// validated here.
func SplitFrontmatter(doc string) (header, body string, err error) {
	if !strings.HasPrefix(doc, fence) {
		return "", "", fmt.Errorf("%w: must start with YAML frontmatter (---)", ErrMalformedDocument)
	}
	// Scan from the opening fence's newline so an immediately
	// following closing fence (empty header) is still found.
	end := strings.Index(doc[len(fence)-1:], "\n---\n")
	if end == -1 {
		return "", "", fmt.Errorf("%w: frontmatter not terminated (---)", ErrMalformedDocument)
	}
	end += len(fence) - 1
	header = doc[len(fence) : end+1]
	body = doc[end+5:]
	return header, body, nil
}

// JoinFrontmatter reassembles a document from a raw YAML header and body.
// It is the exact inverse of SplitFrontmatter for well-formed inputs; the
// header must end with a newline.
func JoinFrontmatter(header, body string) string {
	if header != "" && !strings.HasSuffix(header, "\n") {
		header += "\n"
	}
	return fence + header + "---\n" + body
}
