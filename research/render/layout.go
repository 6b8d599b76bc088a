package render

import (
	"strings"
	"unicode/utf8"

	"research-backend/research/model"
)

// BlockKind tags a layout block.
type BlockKind int

const (
	BlockTitle BlockKind = iota
	BlockSectionHeader
	BlockParagraph
	BlockBulletList
	BlockFooter
)

func (k BlockKind) String() string {
	switch k {
	case BlockTitle:
		return "title"
	case BlockSectionHeader:
		return "section_header"
	case BlockParagraph:
		return "paragraph"
	case BlockBulletList:
		return "bullet_list"
	case BlockFooter:
		return "footer"
	default:
		return "unknown"
	}
}

// Block is one typed unit of the paginated document. Items is only set for bullet lists.
type Block struct {
	Kind  BlockKind
	Text  string
	Items []string
}

const bulletPrefix = "• "

// PageSpec describes the page geometry in points.
type PageSpec struct {
	Width      float64
	Height     float64
	Margin     float64
	LineHeight float64
}

// DefaultPageSpec is A4 portrait with a 40pt margin and 18pt line height.
func DefaultPageSpec() PageSpec {
	return PageSpec{Width: 595, Height: 842, Margin: 40, LineHeight: 18}
}

func (s PageSpec) normalized() PageSpec {
	def := DefaultPageSpec()
	if s.Width <= 0 {
		s.Width = def.Width
	}
	if s.Height <= 0 {
		s.Height = def.Height
	}
	if s.Margin < 0 {
		s.Margin = def.Margin
	}
	if s.LineHeight <= 0 {
		s.LineHeight = def.LineHeight
	}
	return s
}

// ContentWidth is the wrap width between the side margins.
func (s PageSpec) ContentWidth() float64 {
	return s.Width - 2*s.Margin
}

// TextMeasurer reports the rendered width of text in points.
type TextMeasurer interface {
	TextWidth(text string, style TextStyle) float64
}

// DrawOp is one positioned line of text. Y is the baseline.
type DrawOp struct {
	Kind  BlockKind
	Text  string
	X     float64
	Y     float64
	Style TextStyle
}

// Page holds the draw operations of a single page in order.
type Page struct {
	Ops []DrawOp
}

// Blocks returns the fixed block sequence for a record. The notes blocks are
// emitted only when notes are non-empty.
func Blocks(record model.ResearchRecord, ctx model.ExportContext) []Block {
	blocks := []Block{
		{Kind: BlockTitle, Text: model.Title(ctx.SubjectLabel)},
		{Kind: BlockSectionHeader, Text: model.HeadingQuestions},
		{Kind: BlockBulletList, Items: record.Questions},
		{Kind: BlockSectionHeader, Text: model.HeadingBusinessModel},
		{Kind: BlockParagraph, Text: record.BusinessModel},
		{Kind: BlockSectionHeader, Text: model.HeadingRisks},
		{Kind: BlockBulletList, Items: record.Risks},
		{Kind: BlockSectionHeader, Text: model.HeadingGrowthDrivers},
		{Kind: BlockBulletList, Items: record.GrowthDrivers},
	}
	if ctx.Notes != "" {
		blocks = append(blocks,
			Block{Kind: BlockSectionHeader, Text: model.HeadingNotes},
			Block{Kind: BlockParagraph, Text: ctx.Notes},
		)
	}
	return append(blocks, Block{Kind: BlockFooter, Text: model.GeneratedOnLine(ctx.GeneratedAt)})
}

type layoutState struct {
	spec     PageSpec
	measurer TextMeasurer
	pages    []Page
	y        float64
}

// Layout flows the record onto pages in a single greedy pass.
func Layout(record model.ResearchRecord, ctx model.ExportContext, spec PageSpec, measurer TextMeasurer) []Page {
	return LayoutBlocks(Blocks(record, ctx), spec, measurer)
}

// LayoutBlocks flows already-built blocks onto pages.
func LayoutBlocks(blocks []Block, spec PageSpec, measurer TextMeasurer) []Page {
	spec = spec.normalized()
	st := &layoutState{
		spec:     spec,
		measurer: measurer,
		pages:    []Page{{}},
		y:        spec.Margin,
	}
	for _, b := range blocks {
		st.place(b)
	}
	return st.pages
}

func (st *layoutState) place(b Block) {
	style := StyleMap[b.Kind]
	switch b.Kind {
	case BlockTitle:
		st.drawWrapped(b.Kind, b.Text, style, TitleAdvance)
	case BlockSectionHeader, BlockParagraph, BlockFooter:
		st.drawWrapped(b.Kind, b.Text, style, st.spec.LineHeight)
	case BlockBulletList:
		for _, item := range b.Items {
			st.drawWrapped(b.Kind, bulletPrefix+item, style, st.spec.LineHeight)
		}
		gap := st.spec.LineHeight / 2
		st.ensure(gap)
		st.y += gap
	}
}

func (st *layoutState) drawWrapped(kind BlockKind, text string, style TextStyle, advance float64) {
	for _, line := range wrapText(text, style, st.spec.ContentWidth(), st.measurer) {
		st.ensure(advance)
		page := &st.pages[len(st.pages)-1]
		page.Ops = append(page.Ops, DrawOp{Kind: kind, Text: line, X: st.spec.Margin, Y: st.y, Style: style})
		st.y += advance
	}
}

// ensure starts a new page when h does not fit below the cursor. A fresh page
// never breaks again, so content taller than the page still terminates.
func (st *layoutState) ensure(h float64) {
	if st.y+h <= st.spec.Height-st.spec.Margin {
		return
	}
	if st.y <= st.spec.Margin {
		return
	}
	st.pages = append(st.pages, Page{})
	st.y = st.spec.Margin
}

// wrapText splits text into lines no wider than width. Explicit line breaks
// are kept; words wider than the line are broken by character.
func wrapText(text string, style TextStyle, width float64, m TextMeasurer) []string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		out = append(out, wrapLine(strings.TrimSuffix(raw, "\r"), style, width, m)...)
	}
	return out
}

func wrapLine(line string, style TextStyle, width float64, m TextMeasurer) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var out []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if m.TextWidth(candidate, style) <= width {
			current = candidate
			continue
		}
		if current != "" {
			out = append(out, current)
			current = ""
		}
		if m.TextWidth(word, style) <= width {
			current = word
			continue
		}
		pieces := breakWord(word, style, width, m)
		out = append(out, pieces[:len(pieces)-1]...)
		current = pieces[len(pieces)-1]
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}

func breakWord(word string, style TextStyle, width float64, m TextMeasurer) []string {
	var out []string
	start := 0
	for i := 0; i < len(word); {
		_, size := utf8.DecodeRuneInString(word[i:])
		next := i + size
		if i > start && m.TextWidth(word[start:next], style) > width {
			out = append(out, word[start:i])
			start = i
		}
		i = next
	}
	return append(out, word[start:])
}

// PageCount is a convenience for callers that only need the number of pages.
func PageCount(record model.ResearchRecord, ctx model.ExportContext, spec PageSpec, measurer TextMeasurer) int {
	return len(Layout(record, ctx, spec, measurer))
}
