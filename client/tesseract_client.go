package client

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog/log"
)

// TesseractConfig is passed to every recognition call. Nothing is read from
// the process environment.
type TesseractConfig struct {
	DataPath string
	Language string
}

type TesseractClient struct {
	cfg TesseractConfig
}

func NewTesseractClient(cfg TesseractConfig) *TesseractClient {
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &TesseractClient{cfg: cfg}
}

// Recognize runs Tesseract on an encoded image treating the page as a single
// uniform block of text (--psm 6).
func (tc *TesseractClient) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer func() {
		_ = client.Close()
	}()

	if tc.cfg.DataPath != "" {
		if err := client.SetTessdataPrefix(tc.cfg.DataPath); err != nil {
			return "", fmt.Errorf("failed to set tessdata prefix: %w", err)
		}
	}

	if err := client.SetLanguage(tc.cfg.Language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	log.Debug().Int("chars", len(text)).Msg("Tesseract recognition finished")
	return text, nil
}
