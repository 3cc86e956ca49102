package service

import (
	"bytes"
	"context"
	"image"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/dto"
	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/utils"
)

// minTextLayerChars is the shortest PDF text layer trusted over OCR.
const minTextLayerChars = 20

// QRReader decodes the QR code printed on Aadhaar cards.
type QRReader interface {
	Decode(img image.Image) (*dto.AadhaarQRData, error)
}

// AadhaarService handles Aadhaar card data extraction and verification
type AadhaarService struct {
	textExtractor *TextExtractor
	pdfProcessor  PDFProcessor
	qrReader      QRReader
	nameMatcher   *utils.NameMatcher
}

// NewAadhaarService creates a new AadhaarService instance. qrReader may be nil.
func NewAadhaarService(textExtractor *TextExtractor, pdfProcessor PDFProcessor, qrReader QRReader, nameMatcher *utils.NameMatcher) *AadhaarService {
	if nameMatcher == nil {
		nameMatcher = utils.NewNameMatcher(nil, utils.DefaultNameMatchThreshold)
	}
	return &AadhaarService{
		textExtractor: textExtractor,
		pdfProcessor:  pdfProcessor,
		qrReader:      qrReader,
		nameMatcher:   nameMatcher,
	}
}

// ExtractFromFile reads an Aadhaar image or e-Aadhaar PDF. Only a document
// that cannot be decoded is an error; missing fields are left empty.
func (s *AadhaarService) ExtractFromFile(ctx context.Context, fileData []byte, mimeType, password string) (*dto.AadhaarExtraction, error) {
	var (
		text   string
		source string
		pages  []image.Image
	)

	if isPDF(fileData, mimeType) {
		log.Info().Msg("Processing PDF file for Aadhaar extraction")

		layer, err := s.pdfProcessor.ExtractText(fileData, password)
		if err != nil {
			log.Debug().Err(err).Msg("PDF text layer unavailable")
		}
		if len(strings.TrimSpace(layer)) >= minTextLayerChars {
			text, source = layer, "pdf_text"
		} else {
			images, err := s.pdfProcessor.ExtractImages(fileData, password)
			if err != nil {
				return nil, err
			}
			pages = preferFrontSide(images)
		}
	} else {
		log.Info().Str("mime_type", mimeType).Msg("Processing image file for Aadhaar extraction")

		img, err := DecodeImage(fileData)
		if err != nil {
			return nil, err
		}
		pages = []image.Image{img}
	}

	if source == "" {
		source = "ocr"
		text = s.ocrPages(ctx, pages)
	}

	result := parseAadhaarText(text)
	result.Source = source
	result.QR = s.readQR(pages)

	log.Info().
		Str("source", source).
		Bool("number_found", result.AadhaarNumber != "").
		Bool("name_found", result.Name != "").
		Bool("qr_found", result.QR != nil).
		Msg("Aadhaar extraction finished")

	return result, nil
}

// ExtractText runs preprocessing and OCR on a single image, returning the raw
// transcription.
func (s *AadhaarService) ExtractText(ctx context.Context, img image.Image) string {
	return s.textExtractor.Extract(ctx, PreprocessImage(img))
}

// VerifyNumber compares a declared Aadhaar number with the extracted one.
// Nothing extracted means unverified.
func (s *AadhaarService) VerifyNumber(declared string, extraction *dto.AadhaarExtraction) dto.AadhaarNumberVerification {
	var extracted string
	if extraction != nil {
		extracted = extraction.AadhaarNumber
	}
	return dto.AadhaarNumberVerification{
		Verified:  utils.VerifyAadhaarNumber(declared, extracted),
		Declared:  declared,
		Extracted: extracted,
	}
}

// VerifyName compares a declared name with the name extracted from the document.
func (s *AadhaarService) VerifyName(declared string, extraction *dto.AadhaarExtraction) dto.NameVerification {
	var extracted string
	if extraction != nil {
		extracted = extraction.Name
	}
	match := s.nameMatcher.Match(declared, extracted)
	return dto.NameVerification{
		Matched:        match.Matched,
		Method:         match.Method,
		Score:          match.Score,
		FuzzyAvailable: match.FuzzyAvailable,
		Declared:       declared,
		Extracted:      extracted,
	}
}

func (s *AadhaarService) ocrPages(ctx context.Context, pages []image.Image) string {
	var fullText strings.Builder
	for idx, page := range pages {
		pageText := s.ExtractText(ctx, page)
		log.Debug().Int("page", idx+1).Int("chars", len(pageText)).Msg("OCR on page")
		if fullText.Len() > 0 {
			fullText.WriteString("\n")
		}
		fullText.WriteString(pageText)
	}
	return fullText.String()
}

// readQR returns the first decodable Aadhaar QR payload, if any. It is
// reported next to the OCR fields and never replaces them.
func (s *AadhaarService) readQR(pages []image.Image) *dto.AadhaarQRInfo {
	if s.qrReader == nil {
		return nil
	}
	for _, page := range pages {
		data, err := s.qrReader.Decode(page)
		if err != nil {
			log.Debug().Err(err).Msg("No QR code on page")
			continue
		}
		return data.Info()
	}
	return nil
}

// parseAadhaarText runs every field extractor over the raw text.
func parseAadhaarText(text string) *dto.AadhaarExtraction {
	result := &dto.AadhaarExtraction{RawText: text}
	result.AadhaarNumber, _ = utils.ExtractAadhaarNumber(text)
	result.Name, _ = utils.ExtractName(text)
	result.DOB, _ = utils.ExtractDOB(text)
	result.Gender = utils.ExtractGender(text)
	return result
}

// preferFrontSide moves page 2, which carries the card front in e-Aadhaar
// letters, to the start.
func preferFrontSide(images []image.Image) []image.Image {
	if len(images) < 2 {
		return images
	}
	ordered := make([]image.Image, 0, len(images))
	ordered = append(ordered, images[1], images[0])
	return append(ordered, images[2:]...)
}

func isPDF(data []byte, mimeType string) bool {
	return strings.Contains(mimeType, "pdf") || bytes.HasPrefix(data, []byte("%PDF"))
}
