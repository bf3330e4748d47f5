package document

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionAndSupported(t *testing.T) {
	assert.Equal(t, ".txt", Extension("a/b/Notes.TXT"))
	assert.Equal(t, ".docx", Extension("x.final.Docx"))
	assert.Equal(t, "", Extension("README"))

	for _, ok := range []string{".txt", ".TXT", ".docx", "docx", "Txt"} {
		assert.True(t, Supported(ok), ok)
	}
	for _, bad := range []string{".pdf", ".doc", "", ".txt.bak"} {
		assert.False(t, Supported(bad), bad)
	}
}

func TestDecodeTextEncodings(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want string
	}{
		{"utf8", []byte("你好, world"), "你好, world"},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, "abc"...), "abc"},
		{"utf16le bom", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi"},
		{"gbk", []byte{0xC4, 0xE3, 0xBA, 0xC3}, "你好"},
		{"latin1 fallback", []byte("caf\xe9"), "café"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeText(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeRejectsUnknownExtension(t *testing.T) {
	_, err := Decoder{}.Decode(".pdf", []byte("%PDF"))
	assert.True(t, errors.Is(err, ErrUnsupported))

	_, err = Decoder{}.Decode(".doc", []byte{0xD0, 0xCF})
	assert.True(t, errors.Is(err, ErrUnsupported))
	assert.Contains(t, err.Error(), ".docx")
}

func TestDecodeDOCXParagraphs(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
  <w:p><w:r><w:t>第一行</w:t></w:r><w:r><w:t xml:space="preserve"> line one</w:t></w:r></w:p>
  <w:p><w:r><w:t>   </w:t></w:r></w:p>
  <w:p></w:p>
  <w:p><w:hyperlink><w:r><w:t>linked</w:t></w:r></w:hyperlink><w:r><w:tab/><w:t>after tab</w:t></w:r></w:p>
  <w:tbl><w:tr><w:tc><w:p><w:r><w:t>table cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
  <w:p><w:pPr><w:rPr><w:t>ignored</w:t></w:rPr></w:pPr><w:r><w:t>last</w:t><w:br/><w:t>line</w:t></w:r></w:p>
  <w:sectPr/>
</w:body>
</w:document>`
	data := buildDOCX(t, body)

	got, err := Decoder{}.Decode(".DOCX", data)
	require.NoError(t, err)
	assert.Equal(t, "第一行 line one\nlinked\tafter tab\nlast\nline", got)
}

func TestDecodeDOCXErrors(t *testing.T) {
	_, err := Decoder{}.Decode(".docx", []byte("not a zip"))
	assert.True(t, errors.Is(err, ErrUndecodable))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, _ = zw.Create("word/styles.xml")
	require.NoError(t, zw.Close())
	_, err = Decoder{}.Decode(".docx", buf.Bytes())
	assert.True(t, errors.Is(err, ErrUndecodable))
}

func TestDecodeDOCXBodyLimit(t *testing.T) {
	body := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` +
		strings.Repeat("x", 500) + `</w:t></w:r></w:p></w:body></w:document>`
	data := buildDOCX(t, body)

	_, err := Decoder{MaxXMLBytes: 64}.Decode(".docx", data)
	assert.True(t, errors.Is(err, ErrUndecodable))

	got, err := Decoder{}.Decode(".docx", data)
	require.NoError(t, err)
	assert.Len(t, got, 500)
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, _ = w.Write([]byte(`<Types/>`))
	w, err = zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
