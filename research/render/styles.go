package render

// TextStyle captures the font treatment of a drawn line.
type TextStyle struct {
	Bold   bool
	Italic bool
	Size   float64
}

const (
	FontFamily   = "Helvetica"
	TitleSize    = 20
	HeadingSize  = 16
	BodySize     = 12
	FooterSize   = 10
	TitleAdvance = 30
)

// StyleMap centralizes the font treatment per block kind.
var StyleMap = map[BlockKind]TextStyle{
	BlockTitle: {
		Bold: true,
		Size: TitleSize,
	},
	BlockSectionHeader: {
		Bold: true,
		Size: HeadingSize,
	},
	BlockParagraph: {
		Size: BodySize,
	},
	BlockBulletList: {
		Size: BodySize,
	},
	BlockFooter: {
		Italic: true,
		Size:   FooterSize,
	},
}

// fpdfStyle maps the style onto the core-font style string ("", "B", "I", "BI").
func (s TextStyle) fpdfStyle() string {
	out := ""
	if s.Bold {
		out += "B"
	}
	if s.Italic {
		out += "I"
	}
	return out
}
