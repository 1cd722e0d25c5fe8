// Package images decodes raster images embedded in score documents.
//
// Engraving tools and scanning pipelines inline images as data URIs
// on image elements. This package turns those hrefs back into pixels
// and normalizes them to PNG for downstream consumers.
package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"net/url"
	"strings"

	// formats seen in the wild: stdlib gif/jpeg/png plus the older
	// scanner outputs
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// DecodeDataURI decodes an image from a data: URI href
func DecodeDataURI(href string) (image.Image, error) {
	payload, err := dataPayload(href)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// dataPayload extracts the raw bytes from a data: URI
func dataPayload(href string) ([]byte, error) {
	const scheme = "data:"
	if !strings.HasPrefix(href, scheme) {
		return nil, fmt.Errorf("not a data URI")
	}

	rest := href[len(scheme):]
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URI: no payload")
	}
	meta, body := rest[:comma], rest[comma+1:]

	if strings.HasSuffix(meta, ";base64") {
		// attribute values may wrap the encoded body across lines
		body = strings.Map(dropSpace, body)
		data, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 payload: %w", err)
		}
		return data, nil
	}

	unescaped, err := url.PathUnescape(body)
	if err != nil {
		return nil, fmt.Errorf("decoding percent-encoded payload: %w", err)
	}
	return []byte(unescaped), nil
}

func dropSpace(r rune) rune {
	switch r {
	case ' ', '\t', '\n', '\r':
		return -1
	}
	return r
}

// ToPNG re-encodes any decoded image as PNG
func ToPNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}
