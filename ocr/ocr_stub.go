//go:build !ocr

// Package ocr recovers text from raster images embedded in score
// documents, typically scanned title blocks and engraving credits.
//
// This is the stub compiled when the "ocr" build tag is not set; all
// operations return [ErrOCRNotEnabled]. To enable recognition,
// install Tesseract and rebuild:
//
//	go build -tags ocr
package ocr

import "errors"

// ErrOCRNotEnabled is returned when OCR operations are called but OCR
// support was not compiled in
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client is the stub session; every operation fails
type Client struct{}

// New returns ErrOCRNotEnabled
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op, safe on a nil client
func (c *Client) Close() error {
	return nil
}

// RecognizeImage returns ErrOCRNotEnabled
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// SetLanguage returns ErrOCRNotEnabled
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}
