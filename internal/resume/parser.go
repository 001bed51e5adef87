package resume

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// ErrUnsupportedFormat is returned for resume formats this parser cannot read.
var ErrUnsupportedFormat = errors.New("unsupported resume format")

var xmlTagRe = regexp.MustCompile(`<[^>]+>`)

// ExtractText pulls plain text out of a resume file. Supported extensions are
// .pdf, .docx and .txt; ext must include the leading dot, case is ignored.
func ExtractText(ext string, data []byte) (string, error) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return textFromPDF(data)
	case ".docx":
		return textFromDocx(data)
	case ".txt":
		return collapseWhitespace(string(data)), nil
	default:
		return "", errors.Wrap(ErrUnsupportedFormat, ext)
	}
}

func textFromPDF(data []byte) (string, error) {

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err = io.Copy(&buf, plainText); err != nil {
		return "", err
	}
	return collapseWhitespace(buf.String()), nil
}

func textFromDocx(data []byte) (string, error) {

	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	document, err := readArchiveFile(archive, "word/document.xml")
	if err != nil {
		return "", err
	}

	text := strings.ReplaceAll(string(document), "</w:p>", "\n")
	text = strings.ReplaceAll(text, "<w:tab/>", "\t")
	text = xmlTagRe.ReplaceAllString(text, " ")
	return collapseWhitespace(text), nil
}

func readArchiveFile(archive *zip.Reader, name string) ([]byte, error) {
	for _, file := range archive.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, errors.Errorf("no %v found in archive", name)
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}
