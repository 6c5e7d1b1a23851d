package wizard

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, transparent bool) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	if transparent {
		img.Set(2, 2, color.NRGBA{A: 0})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

type fakeUploader struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, file Upload) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	f.names = append(f.names, file.Name)
	f.mu.Unlock()
	return "https://cdn.example/" + file.Name, nil
}

func TestHasTransparency(t *testing.T) {
	assert.True(t, HasTransparency(encodePNG(t, true)))
	assert.False(t, HasTransparency(encodePNG(t, false)))
	assert.False(t, HasTransparency([]byte("not an image")))
}

// pngHeader is a PNG signature plus an IHDR chunk declaring w x h RGBA pixels, with no image data.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // truecolor with alpha

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestWithinPixelBudget(t *testing.T) {
	assert.True(t, withinPixelBudget(encodePNG(t, true)))
	assert.True(t, withinPixelBudget(pngHeader(6000, 6000)))
	assert.False(t, withinPixelBudget(pngHeader(12000, 12000)))
	assert.False(t, withinPixelBudget([]byte("not an image")))
}

func TestHasTransparency_SkipsOversizedImages(t *testing.T) {
	prev := maxInspectPixels
	maxInspectPixels = 15
	t.Cleanup(func() { maxInspectPixels = prev })

	// 4x4 is over a 15 pixel budget, so the transparent pixel is never scanned.
	assert.False(t, HasTransparency(encodePNG(t, true)))

	maxInspectPixels = 16
	assert.True(t, HasTransparency(encodePNG(t, true)))
}

func TestAcceptsMime(t *testing.T) {
	assert.True(t, AcceptsMime(ServiceTShirtPrinting, "image/png"))
	assert.False(t, AcceptsMime(ServiceTShirtPrinting, "image/jpeg"))
	assert.False(t, AcceptsMime(ServiceTShirtPrinting, "application/pdf"))

	assert.True(t, AcceptsMime(ServiceGraphicDesign, "image/jpeg"))
	assert.True(t, AcceptsMime(ServiceGraphicDesign, "video/mp4"))
	assert.True(t, AcceptsMime(ServiceGraphicDesign, "application/pdf"))
	assert.False(t, AcceptsMime(ServiceGraphicDesign, "text/plain"))
}

func TestDetectMime(t *testing.T) {
	assert.Equal(t, "image/png", DetectMime("application/octet-stream", encodePNG(t, false)))
	assert.Equal(t, "application/pdf", DetectMime("", []byte("%PDF-1.4\n%...")))
	assert.Equal(t, "text/plain", DetectMime("image/png", []byte("hello world")))
}

func TestProcessUploads_TShirt(t *testing.T) {
	store := &fakeUploader{}
	uploads := []Upload{
		{Name: "front.png", Data: encodePNG(t, true)},
		{Name: "photo.jpg", Data: encodeJPEG(t)},
		{Name: "back.png", Data: encodePNG(t, false)},
	}

	files, rejected, err := ProcessUploads(context.Background(), ServiceTShirtPrinting, uploads, store)
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "front.png", files[0].Name)
	assert.Equal(t, "back.png", files[1].Name)
	require.NotNil(t, files[0].IsTransparent)
	assert.True(t, *files[0].IsTransparent)
	require.NotNil(t, files[1].IsTransparent)
	assert.False(t, *files[1].IsTransparent)
	assert.Equal(t, "https://cdn.example/front.png", files[0].URL)
	assert.Equal(t, "image/png", files[0].Type)
	assert.NotEqual(t, files[0].ID, files[1].ID)

	require.Len(t, rejected, 1)
	assert.Equal(t, "photo.jpg", rejected[0].Name)
	assert.Equal(t, RejectionNotice(ServiceTShirtPrinting), rejected[0].Reason)
	assert.ElementsMatch(t, []string{"front.png", "back.png"}, store.names)
}

func TestProcessUploads_GraphicDesignSkipsTransparency(t *testing.T) {
	files, rejected, err := ProcessUploads(context.Background(), ServiceGraphicDesign, []Upload{
		{Name: "ref.jpg", Data: encodeJPEG(t)},
		{Name: "brief.pdf", Data: []byte("%PDF-1.4\n")},
	}, nil)
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, files, 2)
	assert.Nil(t, files[0].IsTransparent)
	assert.Equal(t, "application/pdf", files[1].Type)
	assert.Empty(t, files[1].URL)
}

func TestProcessUploads_StorageFailure(t *testing.T) {
	store := &fakeUploader{err: errors.New("bucket unavailable")}
	_, _, err := ProcessUploads(context.Background(), ServiceGraphicDesign, []Upload{
		{Name: "ref.jpg", Data: encodeJPEG(t)},
	}, store)
	assert.ErrorContains(t, err, "bucket unavailable")
}
