package chart

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Image is a chart rendered to an in-memory image.
type Image struct {
	canvas      string
	spec        Spec
	data        []byte
	contentType string
}

// Canvas returns the canvas the image was drawn on.
func (i *Image) Canvas() string { return i.canvas }

// Spec returns the spec the image was drawn from.
func (i *Image) Spec() Spec { return i.spec }

// Bytes returns the encoded image.
func (i *Image) Bytes() []byte { return i.data }

// ContentType returns the MIME type of the encoded image.
func (i *Image) ContentType() string { return i.contentType }

// ImageLibrary is a Library that renders every chart with a Renderer and
// keeps the encoded image until it is destroyed.
type ImageLibrary struct {
	renderer *Renderer
	logger   *zap.Logger

	mu   sync.Mutex
	live map[*Image]struct{}
}

// NewImageLibrary creates an image library drawing with renderer.
func NewImageLibrary(renderer *Renderer, logger *zap.Logger) *ImageLibrary {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageLibrary{
		renderer: renderer,
		logger:   logger,
		live:     make(map[*Image]struct{}),
	}
}

// Create renders spec and returns the resulting image handle.
func (l *ImageLibrary) Create(canvasID string, spec Spec) (Handle, error) {
	data, err := l.renderer.RenderBytes(spec)
	if err != nil {
		return nil, err
	}

	img := &Image{
		canvas:      canvasID,
		spec:        spec,
		data:        data,
		contentType: l.renderer.ContentType(),
	}

	l.mu.Lock()
	l.live[img] = struct{}{}
	l.mu.Unlock()

	l.logger.Debug("chart rendered",
		zap.String("op", "chart.Create"),
		zap.String("canvas", canvasID),
		zap.Int("bytes", len(data)),
	)
	return img, nil
}

// Destroy releases an image created by this library.
func (l *ImageLibrary) Destroy(handle Handle) error {
	img, ok := handle.(*Image)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnknownHandle, handle)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.live[img]; !exists {
		return fmt.Errorf("%w: chart on %s already destroyed", ErrUnknownHandle, img.canvas)
	}
	delete(l.live, img)
	img.data = nil
	return nil
}

// Live reports how many images have been created and not yet destroyed.
func (l *ImageLibrary) Live() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live)
}
