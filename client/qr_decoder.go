package client

import (
	"encoding/xml"
	"errors"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/rs/zerolog/log"

	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/dto"
)

// ErrNoQRCode is returned when the image holds no readable Aadhaar QR code.
var ErrNoQRCode = errors.New("no aadhaar qr code found")

// QRDecoder reads the XML QR code printed on Aadhaar letters.
type QRDecoder struct {
	hints map[gozxing.DecodeHintType]interface{}
}

func NewQRDecoder() *QRDecoder {
	return &QRDecoder{
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// Decode returns the parsed QR payload. The secure (signed, compressed) QR
// format is not XML and is reported as ErrNoQRCode.
func (d *QRDecoder) Decode(img image.Image) (*dto.AadhaarQRData, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, d.hints)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoQRCode, err)
	}

	qrText := result.GetText()
	log.Debug().Int("bytes", len(qrText)).Msg("QR code decoded")

	var qrData dto.AadhaarQRData
	if err := xml.Unmarshal([]byte(qrText), &qrData); err != nil {
		return nil, fmt.Errorf("%w: payload is not aadhaar xml: %v", ErrNoQRCode, err)
	}
	if qrData.UID == "" && qrData.Name == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrNoQRCode)
	}

	return &qrData, nil
}
