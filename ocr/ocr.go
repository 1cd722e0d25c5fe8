//go:build ocr

// Package ocr recovers text from raster images embedded in score
// documents, typically scanned title blocks and engraving credits.
//
// This package wraps the Tesseract engine via gosseract and requires
// Tesseract to be installed on the system. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Builds without the "ocr" tag get a stub whose operations return
// [ErrOCRNotEnabled].
package ocr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// ErrOCRNotEnabled is returned by the stub build only. It is declared
// here as well so errors.Is checks compile under either tag.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client wraps a Tesseract session
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client. Close it when no longer needed.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases the Tesseract session
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// RecognizeImage performs OCR on encoded image data (PNG, JPEG,
// TIFF). Returns the recognized text with surrounding whitespace
// trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("setting image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// SetLanguage selects the recognition language(s). Multiple languages
// join with "+", for example "eng+deu" for bilingual editions.
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}
