package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sellsense/knowbase/ai/mock"
	"github.com/sellsense/knowbase/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_PlainText(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.GetMockCompleter().FixedResponse = "{}"
	e := newTestExtractor(t, provider)

	got, err := e.Extract(context.Background(), File{
		Name: "notes.txt",
		Data: []byte("Model X has 300 horsepower."),
	})

	require.NoError(t, err)
	assert.Equal(t, "Model X has 300 horsepower.", got.RawText)
	assert.Equal(t, core.ContentTypeText, got.ContentType)
	assert.Equal(t, "text/plain", got.MimeType)
}

func TestExtract_UnsupportedType(t *testing.T) {
	e := newTestExtractor(t, mock.NewMockProvider())

	_, err := e.Extract(context.Background(), File{
		Name: "binary.exe",
		Data: []byte{0x4d, 0x5a},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestExtract_LegacyBinaryOfficeFormatsRejected(t *testing.T) {
	e := newTestExtractor(t, mock.NewMockProvider())

	// The XML-era decoders cannot read the old binary containers, so the
	// extensions are outside the closed format set.
	for _, name := range []string{"report.doc", "figures.xls"} {
		_, err := e.Extract(context.Background(), File{
			Name: name,
			Data: []byte{0xd0, 0xcf, 0x11, 0xe0},
		})
		assert.ErrorIs(t, err, ErrUnsupportedType, name)
	}
}

func TestExtract_EmptyFile(t *testing.T) {
	e := newTestExtractor(t, mock.NewMockProvider())

	_, err := e.Extract(context.Background(), File{Name: "empty.txt"})

	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestExtract_DeclaredTypeWins(t *testing.T) {
	provider := mock.NewMockProvider()
	e := newTestExtractor(t, provider)

	got, err := e.Extract(context.Background(), File{
		Name:         "export.dat",
		Data:         []byte("plain content."),
		DeclaredType: "txt",
	})

	require.NoError(t, err)
	assert.Equal(t, core.ContentTypeText, got.ContentType)
}

func TestExtract_CorruptPDF(t *testing.T) {
	e := newTestExtractor(t, mock.NewMockProvider())

	_, err := e.Extract(context.Background(), File{
		Name: "broken.pdf",
		Data: []byte("this is not a pdf"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecodeFailed)
}

func TestExtract_Docx(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Model X overview.</w:t></w:r></w:p>
    <w:p><w:r><w:t>300 horsepower engine.</w:t></w:r></w:p>
  </w:body>
</w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	e := newTestExtractor(t, mock.NewMockProvider())
	got, err := e.Extract(context.Background(), File{Name: "overview.docx", Data: buf.Bytes()})

	require.NoError(t, err)
	assert.Contains(t, got.RawText, "Model X overview.")
	assert.Contains(t, got.RawText, "300 horsepower engine.")
	assert.Equal(t, core.ContentTypeWord, got.ContentType)
}

func TestExtract_CSV(t *testing.T) {
	e := newTestExtractor(t, mock.NewMockProvider())

	got, err := e.Extract(context.Background(), File{
		Name: "pricing.csv",
		Data: []byte("model,msrp\nModel X,45000\n"),
	})

	require.NoError(t, err)
	assert.Equal(t, core.ContentTypeSpreadsheet, got.ContentType)
	assert.Contains(t, got.RawText, "model | msrp")
	assert.Contains(t, got.RawText, "Model X | 45000")
}

func TestExtract_ImageConcatenatesOCRAndDescription(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.GetMockVision().OCRFunc = func(ctx context.Context, mimeType string, image []byte) (string, error) {
		return "MODEL X 300HP", nil
	}
	provider.GetMockVision().DescribeFunc = func(ctx context.Context, mimeType string, image []byte) (string, error) {
		return "A silver SUV on a showroom floor.", nil
	}
	e := newTestExtractor(t, provider)

	got, err := e.Extract(context.Background(), File{Name: "photo.png", Data: []byte{0x89, 0x50}})

	require.NoError(t, err)
	assert.Contains(t, got.RawText, "MODEL X 300HP")
	assert.Contains(t, got.RawText, "A silver SUV on a showroom floor.")
}

func TestExtract_ImageFallsBackToOCROnly(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.GetMockVision().OCRFunc = func(ctx context.Context, mimeType string, image []byte) (string, error) {
		return "MODEL X 300HP", nil
	}
	provider.GetMockVision().DescribeFunc = func(ctx context.Context, mimeType string, image []byte) (string, error) {
		return "", errors.New("vision unavailable")
	}
	e := newTestExtractor(t, provider)

	got, err := e.Extract(context.Background(), File{Name: "photo.png", Data: []byte{0x89, 0x50}})

	require.NoError(t, err, "enrichment failure must not abort extraction")
	assert.Equal(t, "MODEL X 300HP", got.RawText)
}

func TestExtract_MediaPlaceholderOnFailure(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.GetMockTranscriber().TranscribeFunc = func(ctx context.Context, filename string, media []byte) (string, error) {
		return "", errors.New("transcription service down")
	}
	e := newTestExtractor(t, provider)

	got, err := e.Extract(context.Background(), File{Name: "demo.mp4", Data: []byte{0x00, 0x01}})

	require.NoError(t, err, "enrichment failure must not abort extraction")
	assert.Equal(t, TranscriptionUnavailable, got.RawText)
	assert.Equal(t, core.ContentTypeMedia, got.ContentType)
}

func TestFormatFor_ClosedSet(t *testing.T) {
	tests := []struct {
		ext  string
		want core.ContentType
		ok   bool
	}{
		{"pdf", core.ContentTypePDF, true},
		{"docx", core.ContentTypeWord, true},
		{"xlsx", core.ContentTypeSpreadsheet, true},
		{"csv", core.ContentTypeSpreadsheet, true},
		{"jpeg", core.ContentTypeImage, true},
		{"mp3", core.ContentTypeMedia, true},
		{"md", core.ContentTypeText, true},
		{"exe", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := formatFor(tt.ext)
		if ok != tt.ok || got != tt.want {
			t.Errorf("formatFor(%q) = (%q, %v), want (%q, %v)", tt.ext, got, ok, tt.want, tt.ok)
		}
	}
}
