package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFProducesDocument(t *testing.T) {
	data, pages, err := PDF(sampleRecord(), sampleContext(), DefaultPageSpec())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, 1, pages)
}

func TestPDFIsByteStable(t *testing.T) {
	first, _, err := PDF(sampleRecord(), sampleContext(), DefaultPageSpec())
	require.NoError(t, err)
	second, _, err := PDF(sampleRecord(), sampleContext(), DefaultPageSpec())
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second))
}

func TestPDFPageCountMatchesLayout(t *testing.T) {
	record := sampleRecord()
	record.Risks = manyItems("Supply chain disruption in region", 150)

	_, pages, err := PDF(record, sampleContext(), DefaultPageSpec())
	require.NoError(t, err)

	want := PageCount(record, sampleContext(), DefaultPageSpec(), HelveticaMeasurer())
	assert.Equal(t, want, pages)
	assert.Greater(t, pages, 1)
}

func TestHelveticaMeasurerIsStyleAware(t *testing.T) {
	m := HelveticaMeasurer()
	body := m.TextWidth("Growth Drivers", StyleMap[BlockParagraph])
	header := m.TextWidth("Growth Drivers", StyleMap[BlockSectionHeader])

	assert.Greater(t, body, 0.0)
	assert.Greater(t, header, body)
}
