package ocr

// RecoverText runs one-shot recognition over encoded image data,
// managing the client lifetime internally. Under the stub build it
// returns ErrOCRNotEnabled.
func RecoverText(imageData []byte) (string, error) {
	client, err := New()
	if err != nil {
		return "", err
	}
	defer client.Close()

	return client.RecognizeImage(imageData)
}
