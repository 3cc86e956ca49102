package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

// OCREngine turns an encoded image into text. Implementations must support
// language selection and page segmentation mode.
type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// TextExtractor runs OCR with bounded concurrency. It never fails: errors,
// panics and timeouts all come back as empty text.
type TextExtractor struct {
	engine  OCREngine
	sem     *semaphore.Weighted
	timeout time.Duration
}

func NewTextExtractor(engine OCREngine, concurrency int, timeout time.Duration) *TextExtractor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &TextExtractor{
		engine:  engine,
		sem:     semaphore.NewWeighted(int64(concurrency)),
		timeout: timeout,
	}
}

type ocrResult struct {
	text string
	err  error
}

// Extract returns the raw transcription of img, possibly empty.
func (e *TextExtractor) Extract(ctx context.Context, img image.Image) string {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		log.Warn().Err(err).Msg("Failed to encode image for OCR")
		return ""
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	if err := e.sem.Acquire(ctx, 1); err != nil {
		log.Warn().Err(err).Msg("OCR slot not acquired")
		return ""
	}

	// The engine call may not honour ctx, so it runs on its own goroutine and
	// keeps its slot until it really finishes.
	done := make(chan ocrResult, 1)
	go func() {
		defer e.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				done <- ocrResult{err: fmt.Errorf("ocr engine panic: %v", r)}
			}
		}()
		text, err := e.engine.Recognize(ctx, buf.Bytes())
		done <- ocrResult{text: text, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			log.Warn().Err(res.err).Msg("OCR failed")
			return ""
		}
		log.Debug().Int("chars", len(res.text)).Msg("OCR finished")
		return res.text
	case <-ctx.Done():
		log.Warn().Err(ctx.Err()).Msg("OCR abandoned")
		return ""
	}
}
