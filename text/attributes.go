package text

// Format identifies a single boolean inline format flag.
type Format int

const (
	// FormatBold is bold weight.
	FormatBold Format = iota
	// FormatItalic is italic slant.
	FormatItalic
	// FormatUnderline is an underline decoration.
	FormatUnderline
	// FormatStrikethrough is a line-through decoration.
	FormatStrikethrough
	// FormatSubscript lowers the baseline.
	FormatSubscript
	// FormatSuperscript raises the baseline.
	FormatSuperscript
	// FormatCode renders in a monospace inline style.
	FormatCode
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatBold:
		return "bold"
	case FormatItalic:
		return "italic"
	case FormatUnderline:
		return "underline"
	case FormatStrikethrough:
		return "strikethrough"
	case FormatSubscript:
		return "subscript"
	case FormatSuperscript:
		return "superscript"
	case FormatCode:
		return "code"
	default:
		return "unknown"
	}
}

// Formats lists every format flag in declaration order.
func Formats() []Format {
	return []Format{
		FormatBold, FormatItalic, FormatUnderline, FormatStrikethrough,
		FormatSubscript, FormatSuperscript, FormatCode,
	}
}

// ParseFormat maps a format name back to its flag.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "bold":
		return FormatBold, true
	case "italic":
		return FormatItalic, true
	case "underline":
		return FormatUnderline, true
	case "strikethrough":
		return FormatStrikethrough, true
	case "subscript":
		return FormatSubscript, true
	case "superscript":
		return FormatSuperscript, true
	case "code":
		return FormatCode, true
	default:
		return 0, false
	}
}

// formatMask is a bit set of Format flags.
type formatMask uint8

func (m formatMask) has(f Format) bool { return m&(1<<uint(f)) != 0 }

// Attributes describes the inline formatting of a run of text.
// Attributes is an immutable value type; the zero value means "no formatting".
type Attributes struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Subscript     bool
	Superscript   bool
	Code          bool

	// Optional fields; the zero value means "unset".
	TextColor       string  // CSS hex color, e.g. "#ff0000"
	BackgroundColor string  // CSS hex color
	FontSize        float64 // In points; 0 means unset
	FontFamily      string
	LinkURL         string

	// clear marks flags this attribute set forces off when merged on top of
	// earlier spans. Produced only by Text.ToggleFormat negation layers.
	clear formatMask
}

// NewFormatAttributes returns attributes with a single flag set.
func NewFormatAttributes(f Format) Attributes {
	var a Attributes
	return a.withFlag(f, true)
}

// IsZero reports whether no flag or optional field is set.
func (a Attributes) IsZero() bool {
	return a == Attributes{}
}

// Equal reports structural equality.
func (a Attributes) Equal(other Attributes) bool {
	return a == other
}

// Has reports whether the given format flag is set.
func (a Attributes) Has(f Format) bool {
	switch f {
	case FormatBold:
		return a.Bold
	case FormatItalic:
		return a.Italic
	case FormatUnderline:
		return a.Underline
	case FormatStrikethrough:
		return a.Strikethrough
	case FormatSubscript:
		return a.Subscript
	case FormatSuperscript:
		return a.Superscript
	case FormatCode:
		return a.Code
	default:
		return false
	}
}

// withFlag returns a copy with the given flag set to v.
func (a Attributes) withFlag(f Format, v bool) Attributes {
	switch f {
	case FormatBold:
		a.Bold = v
	case FormatItalic:
		a.Italic = v
	case FormatUnderline:
		a.Underline = v
	case FormatStrikethrough:
		a.Strikethrough = v
	case FormatSubscript:
		a.Subscript = v
	case FormatSuperscript:
		a.Superscript = v
	case FormatCode:
		a.Code = v
	}
	return a
}

// negated returns attributes that force the given flag off on merge.
func negated(f Format) Attributes {
	return Attributes{clear: 1 << uint(f)}
}

// Cleared reports whether the attribute set forces the given flag off when
// merged on top of earlier spans.
func (a Attributes) Cleared(f Format) bool {
	return a.clear.has(f)
}

// WithCleared returns a copy that forces the given flag off on merge.
// It exists so that serializers can round-trip negation layers.
func (a Attributes) WithCleared(f Format) Attributes {
	a.clear |= 1 << uint(f)
	return a
}

// Merge combines two attribute sets. Boolean flags are OR'd, except flags the
// other side explicitly negates, which are forced off; for optional fields
// the other's non-zero value wins. Merge is not commutative.
func (a Attributes) Merge(other Attributes) Attributes {
	out := a
	out.Bold = (a.Bold || other.Bold) && !other.clear.has(FormatBold)
	out.Italic = (a.Italic || other.Italic) && !other.clear.has(FormatItalic)
	out.Underline = (a.Underline || other.Underline) && !other.clear.has(FormatUnderline)
	out.Strikethrough = (a.Strikethrough || other.Strikethrough) && !other.clear.has(FormatStrikethrough)
	out.Subscript = (a.Subscript || other.Subscript) && !other.clear.has(FormatSubscript)
	out.Superscript = (a.Superscript || other.Superscript) && !other.clear.has(FormatSuperscript)
	out.Code = (a.Code || other.Code) && !other.clear.has(FormatCode)
	out.clear = 0

	if other.TextColor != "" {
		out.TextColor = other.TextColor
	}
	if other.BackgroundColor != "" {
		out.BackgroundColor = other.BackgroundColor
	}
	if other.FontSize != 0 {
		out.FontSize = other.FontSize
	}
	if other.FontFamily != "" {
		out.FontFamily = other.FontFamily
	}
	if other.LinkURL != "" {
		out.LinkURL = other.LinkURL
	}
	return out
}
