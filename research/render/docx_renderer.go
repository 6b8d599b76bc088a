package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"research-backend/research/model"
)

// Paragraph is one block of the structured document. HeadingLevel 0 is body text.
type Paragraph struct {
	Text         string
	HeadingLevel int
}

// Section is an ordered run of paragraphs.
type Section struct {
	Paragraphs []Paragraph
}

// Document is the format-neutral heading/paragraph tree packed into DOCX.
type Document struct {
	Title       string
	GeneratedAt time.Time
	Sections    []Section
}

// StructuredDocument builds the single-section tree for a record.
func StructuredDocument(record model.ResearchRecord, ctx model.ExportContext) Document {
	title := model.Title(ctx.SubjectLabel)
	paras := []Paragraph{{Text: title, HeadingLevel: 1}}

	heading := func(text string) {
		paras = append(paras, Paragraph{Text: text, HeadingLevel: 2})
	}
	items := func(list []string) {
		for _, item := range list {
			paras = append(paras, Paragraph{Text: "- " + item})
		}
	}

	heading(model.HeadingQuestions)
	items(record.Questions)
	heading(model.HeadingBusinessModel)
	paras = append(paras, Paragraph{Text: record.BusinessModel})
	heading(model.HeadingRisks)
	items(record.Risks)
	heading(model.HeadingGrowthDrivers)
	items(record.GrowthDrivers)
	heading(model.HeadingNotes)
	paras = append(paras, Paragraph{Text: ctx.Notes})
	paras = append(paras, Paragraph{Text: model.GeneratedOnLine(ctx.GeneratedAt)})

	return Document{
		Title:       title,
		GeneratedAt: ctx.GeneratedAt,
		Sections:    []Section{{Paragraphs: paras}},
	}
}

// DOCX builds and packs the structured document.
func DOCX(record model.ResearchRecord, ctx model.ExportContext) ([]byte, error) {
	return PackDOCX(StructuredDocument(record, ctx))
}

type zipPart struct {
	name    string
	content []byte
}

// PackDOCX serializes the tree into an OOXML package. Entry timestamps come
// from the document so identical input packs to identical bytes.
func PackDOCX(doc Document) ([]byte, error) {
	documentXML, err := encodeXMLDocument(documentNode(doc))
	if err != nil {
		return nil, fmt.Errorf("encode document.xml: %w", err)
	}
	if err := validateDocumentXMLStructure(string(documentXML)); err != nil {
		return nil, err
	}

	parts := []zipPart{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"docProps/core.xml", corePropertiesXML(doc)},
		{"word/document.xml", documentXML},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)
	modified := doc.GeneratedAt.UTC()
	for _, part := range parts {
		header := &zip.FileHeader{
			Name:     normalizeZipName(part.name),
			Method:   zip.Deflate,
			Modified: modified,
		}
		dst, err := writer.CreateHeader(header)
		if err != nil {
			return nil, err
		}
		if _, err := dst.Write(part.content); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

func documentNode(doc Document) *xmlNode {
	body := wElem("body")
	for _, section := range doc.Sections {
		for _, p := range section.Paragraphs {
			body.add(paragraphNode(p))
		}
	}
	body.add(wElem("sectPr").add(
		wElem("pgSz", wAttr("w", "11906"), wAttr("h", "16838")),
		wElem("pgMar", wAttr("top", "800"), wAttr("right", "800"), wAttr("bottom", "800"), wAttr("left", "800"),
			wAttr("header", "708"), wAttr("footer", "708"), wAttr("gutter", "0")),
	))

	return &xmlNode{
		Name: xml.Name{Local: "w:document"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:w"}, Value: wmlNamespace},
			{Name: xml.Name{Local: "xmlns:r"}, Value: relNamespace},
		},
		Children: []*xmlNode{body},
	}
}

func paragraphNode(p Paragraph) *xmlNode {
	node := wElem("p")
	if p.HeadingLevel > 0 {
		node.add(wElem("pPr").add(wElem("pStyle", wAttr("val", fmt.Sprintf("Heading%d", p.HeadingLevel)))))
	}
	run := wElem("r")
	for i, line := range strings.Split(p.Text, "\n") {
		if i > 0 {
			run.add(wElem("br"))
		}
		t := wElem("t", xml.Attr{Name: xml.Name{Local: "xml:space"}, Value: "preserve"})
		t.add(textNode(strings.TrimSuffix(line, "\r")))
		run.add(t)
	}
	return node.add(run)
}

func corePropertiesXML(doc Document) []byte {
	var title bytes.Buffer
	_ = xml.EscapeText(&title, []byte(doc.Title))
	created := doc.GeneratedAt.UTC().Format(time.RFC3339)

	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" `)
	b.WriteString(`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" `)
	b.WriteString(`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	b.WriteString("<dc:title>" + title.String() + "</dc:title>")
	b.WriteString(`<dcterms:created xsi:type="dcterms:W3CDTF">` + created + "</dcterms:created>")
	b.WriteString(`<dcterms:modified xsi:type="dcterms:W3CDTF">` + created + "</dcterms:modified>")
	b.WriteString("</cp:coreProperties>")
	return b.Bytes()
}

const contentTypesXML = xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`</Types>`

const packageRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`</Relationships>`

const documentRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

// Heading sizes are in half-points.
const stylesXML = xmlHeader + `<w:styles xmlns:w="` + wmlNamespace + `">` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Helvetica" w:hAnsi="Helvetica" w:cs="Helvetica"/><w:sz w:val="24"/></w:rPr></w:rPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
	`<w:pPr><w:keepNext/><w:spacing w:before="240" w:after="120"/><w:outlineLvl w:val="0"/></w:pPr><w:rPr><w:b/><w:sz w:val="40"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
	`<w:pPr><w:keepNext/><w:spacing w:before="200" w:after="80"/><w:outlineLvl w:val="1"/></w:pPr><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>` +
	`</w:styles>`
