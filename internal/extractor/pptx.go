package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var slideNameRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// extractPPTX walks the slides in deck order and, within each slide, every
// shape that carries a text body (slide-major, shape-minor). A shape's text
// is its paragraphs joined by newline; shape texts are joined the same way.
// Shapes without a text body are skipped.
func extractPPTX(data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open zip: %w", err)
	}

	type slide struct {
		file *zip.File
		num  int
	}
	var slides []slide
	for _, f := range r.File {
		if m := slideNameRe.FindStringSubmatch(f.Name); m != nil {
			n, _ := strconv.Atoi(m[1])
			slides = append(slides, slide{file: f, num: n})
		}
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var shapeTexts []string
	for _, s := range slides {
		texts, err := slideShapeTexts(s.file)
		if err != nil {
			return "", fmt.Errorf("parse slide %d: %w", s.num, err)
		}
		shapeTexts = append(shapeTexts, texts...)
	}
	return strings.Join(shapeTexts, "\n"), nil
}

// slideShapeTexts returns one entry per text body on the slide, each with
// its paragraphs joined by newline.
func slideShapeTexts(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var (
		texts      []string
		paragraphs []string
		current    strings.Builder
		inBody     bool
		inPara     bool
		inText     bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "txBody":
				inBody = true
				paragraphs = nil
			case "p":
				if inBody {
					inPara = true
					current.Reset()
				}
			case "t":
				inText = inPara
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "txBody":
				if inBody {
					texts = append(texts, strings.Join(paragraphs, "\n"))
					inBody = false
				}
			case "p":
				if inPara {
					paragraphs = append(paragraphs, current.String())
					inPara = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return texts, nil
}
