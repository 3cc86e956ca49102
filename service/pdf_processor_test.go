package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPDFProcessorRejectsNonPDF(t *testing.T) {
	p := NewPDFProcessor()

	_, err := p.ExtractText([]byte("not a pdf"), "")
	assert.ErrorIs(t, err, ErrPDFRead)

	_, err = p.ExtractImages([]byte("not a pdf"), "")
	assert.ErrorIs(t, err, ErrPDFRead)
}

func TestDecryptPDFWithoutPassword(t *testing.T) {
	data := []byte("%PDF-1.4")

	out, err := decryptPDF(data, "")

	assert.NoError(t, err)
	assert.Equal(t, data, out)
}
