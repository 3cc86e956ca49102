package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog/log"
)

// ErrPDFRead is returned when an uploaded PDF cannot be opened or decrypted.
var ErrPDFRead = errors.New("failed to read pdf")

// PDFProcessor reads e-Aadhaar PDFs. UIDAI protects downloads with a password
// built from the holder's name and year of birth.
type PDFProcessor interface {
	ExtractText(pdfData []byte, password string) (string, error)
	ExtractImages(pdfData []byte, password string) ([]image.Image, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// ExtractText returns the text layer of every page, one line per row.
func (p *pdfProcessor) ExtractText(pdfData []byte, password string) (string, error) {
	data, err := decryptPDF(pdfData, password)
	if err != nil {
		// a password sent with an unprotected file is not an error
		log.Debug().Err(err).Msg("PDF decryption skipped")
		data = pdfData
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPDFRead, err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			log.Debug().Err(err).Int("page", pageIndex).Msg("No text rows on page")
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				textBuilder.WriteString(word.S)
			}
			textBuilder.WriteString("\n")
		}
	}
	return textBuilder.String(), nil
}

// ExtractImages returns the embedded images in page order.
func (p *pdfProcessor) ExtractImages(pdfData []byte, password string) ([]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "pdf_images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	pdfPath := filepath.Join(tempDir, "doc.pdf")
	if err := os.WriteFile(pdfPath, pdfData, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}

	outDir := filepath.Join(tempDir, "images")
	if err := os.Mkdir(outDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create image dir: %w", err)
	}

	if err := api.ExtractImagesFile(pdfPath, outDir, nil, pdfConfig(password)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFRead, err)
	}

	files, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}
	names := make([]string, 0, len(files))
	for _, file := range files {
		if !file.IsDir() {
			names = append(names, file.Name())
		}
	}
	sort.Strings(names)

	var images []image.Image
	for _, name := range names {
		img, err := imaging.Open(filepath.Join(outDir, name))
		if err != nil {
			log.Debug().Err(err).Str("file", name).Msg("Skipping undecodable PDF image")
			continue
		}
		images = append(images, img)
	}

	return images, nil
}

func pdfConfig(password string) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
		conf.OwnerPW = password
	}
	return conf
}

// decryptPDF removes password protection so the text layer can be read.
// Unprotected documents are returned as is.
func decryptPDF(pdfData []byte, password string) ([]byte, error) {
	if password == "" {
		return pdfData, nil
	}

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(pdfData), &out, pdfConfig(password)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFRead, err)
	}
	return out.Bytes(), nil
}
