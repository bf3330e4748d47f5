package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// decodeDOCX returns the body paragraphs of a .docx file joined by "\n".
// Paragraphs that are empty or whitespace-only are skipped.
func decodeDOCX(data []byte, maxXML int64) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: not a docx container: %v", ErrUndecodable, err)
	}
	var body *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return "", fmt.Errorf("%w: word/document.xml missing", ErrUndecodable)
	}
	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open document.xml: %v", ErrUndecodable, err)
	}
	defer rc.Close()

	paras, err := paragraphs(io.LimitReader(rc, maxXML))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	kept := paras[:0]
	for _, p := range paras {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n"), nil
}

// paragraphs walks document.xml and collects the text of every paragraph
// that is a direct child of w:body. Text comes from w:t elements inside
// runs (directly or through a hyperlink); w:tab and w:br/w:cr become tab
// and newline.
func paragraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var (
		stack []string
		out   []string
		cur   strings.Builder
		inPar bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := localName(t.Name)
			stack = append(stack, name)
			if name == "p" && parentIs(stack, "body") {
				inPar = true
				cur.Reset()
				continue
			}
			if !inPar || !inRun(stack) {
				continue
			}
			switch name {
			case "tab":
				cur.WriteByte('\t')
			case "br", "cr":
				cur.WriteByte('\n')
			}
		case xml.EndElement:
			name := localName(t.Name)
			if name == "p" && inPar && len(stack) >= 2 && stack[len(stack)-2] == "body" {
				out = append(out, cur.String())
				inPar = false
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if inPar && len(stack) > 0 && stack[len(stack)-1] == "t" && inRun(stack) {
				cur.Write(t)
			}
		}
	}
	return out, nil
}

func localName(n xml.Name) string {
	if n.Space != "" && n.Space != wordNS {
		return n.Space + ":" + n.Local
	}
	return n.Local
}

func parentIs(stack []string, name string) bool {
	return len(stack) >= 2 && stack[len(stack)-2] == name
}

// inRun reports whether the innermost element on stack sits in a run that
// belongs to the current body paragraph: [... body p r X] or
// [... body p hyperlink r X].
func inRun(stack []string) bool {
	n := len(stack)
	if n < 4 {
		return false
	}
	if stack[n-2] != "r" {
		return false
	}
	if stack[n-3] == "p" && stack[n-4] == "body" {
		return true
	}
	return n >= 5 && stack[n-3] == "hyperlink" && stack[n-4] == "p" && stack[n-5] == "body"
}
