package export

import (
	"fmt"
	"strings"

	"github.com/aretw0/showcase/pkg/domain"
)

// Format is an output encoding of a diagram.
type Format string

const (
	FormatSVG     Format = "svg"
	FormatMermaid Format = "mermaid"
	FormatASCII   Format = "ascii"
)

// Formats lists the supported formats.
var Formats = []Format{FormatSVG, FormatMermaid, FormatASCII}

// ParseFormat accepts a format name or its file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "svg":
		return FormatSVG, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	case "ascii", "text", "txt":
		return FormatASCII, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownFormat, s)
}

// ContentType is the media type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatMermaid:
		return "text/vnd.mermaid; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Ext is the file extension of the format, without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatMermaid:
		return "mmd"
	case FormatASCII:
		return "txt"
	default:
		return string(f)
	}
}
