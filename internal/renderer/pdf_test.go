package renderer

import (
	"bytes"
	"testing"

	"github.com/khadijah-Shabir/exam-paper-generator/internal/domain"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/extractor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_ElementSequence(t *testing.T) {
	body := "### Section\nQ1. foo?\nA) x\nB) y\nC) z\nD) w"

	elements := classify(body)
	require.Len(t, elements, 6)

	assert.Equal(t, element{kind: elementHeading, text: "Section"}, elements[0])
	assert.Equal(t, element{kind: elementQuestion, text: "Q1. foo?"}, elements[1])
	assert.Equal(t, element{kind: elementOption, text: "A) x"}, elements[2])
	assert.Equal(t, element{kind: elementOption, text: "B) y"}, elements[3])
	assert.Equal(t, element{kind: elementOption, text: "C) z"}, elements[4])
	assert.Equal(t, element{kind: elementOption, text: "D) w"}, elements[5])
}

func TestClassify_SkipsBlankLinesAndTrims(t *testing.T) {
	elements := classify("\n  \n  Q1. padded?  \n\nplain body text\n")
	require.Len(t, elements, 2)
	assert.Equal(t, element{kind: elementQuestion, text: "Q1. padded?"}, elements[0])
	assert.Equal(t, element{kind: elementBody, text: "plain body text"}, elements[1])
}

func TestClassify_PrefixPriority(t *testing.T) {
	// A heading marker wins over everything else on the line.
	elements := classify("### Q and A section")
	require.Len(t, elements, 1)
	assert.Equal(t, elementHeading, elements[0].kind)
	assert.Equal(t, "Q and A section", elements[0].text)

	// Any line starting with "Q" is a question, not just "Q<number>".
	elements = classify("Quiz instructions follow")
	assert.Equal(t, elementQuestion, elements[0].kind)

	// "E)" is not one of the four option labels.
	elements = classify("E) not an option")
	assert.Equal(t, elementBody, elements[0].kind)
}

func TestRender_ProducesPDF(t *testing.T) {
	r := New()

	out, err := r.Render("Exam Paper", "### Section\nQ1. foo?\nA) x\nB) y")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "%%EOF")
}

func TestRender_EmptyBody(t *testing.T) {
	r := New()

	out, err := r.Render("Exam Paper", "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

// Styling is lossy but the text content must survive a round trip through
// the package's own PDF extractor.
func TestRender_RoundTripPreservesText(t *testing.T) {
	body := "### Multiple Choice Questions\n" +
		"Q1. Which organelle produces energy?\n" +
		"A) Nucleus\n" +
		"B) Mitochondria\n" +
		"C) Ribosome\n" +
		"D) Golgi apparatus"

	out, err := New().Render("Exam Paper", body)
	require.NoError(t, err)

	result := extractor.New().Extract(domain.UploadedDocument{
		Name:      "exam_paper.pdf",
		MediaType: domain.MediaTypePDF,
		Data:      out,
	})
	require.NoError(t, result.Err)

	assert.Contains(t, result.Text, "Exam Paper")
	assert.Contains(t, result.Text, "Multiple Choice Questions")
	assert.Contains(t, result.Text, "Q1. Which organelle produces energy?")
	assert.Contains(t, result.Text, "A) Nucleus")
	assert.Contains(t, result.Text, "B) Mitochondria")
	assert.Contains(t, result.Text, "C) Ribosome")
	assert.Contains(t, result.Text, "D) Golgi apparatus")
}
