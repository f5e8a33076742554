package markdown

import "strings"

// Block is a generated region of a note delimited by marker lines. Text
// outside the markers belongs to the user and survives regeneration.
type Block struct {
	Start string
	End   string
}

func (b Block) Replace(body, generated string) string {
	start := strings.Index(body, b.Start)
	end := strings.Index(body, b.End)
	region := b.Start + "\n" + generated + "\n" + b.End

	if start >= 0 && end > start {
		end += len(b.End)
		return body[:start] + region + body[end:]
	}
	if strings.TrimSpace(body) == "" {
		return region + "\n"
	}
	if strings.HasSuffix(body, "\n") {
		return body + "\n" + region + "\n"
	}
	return body + "\n\n" + region + "\n"
}
