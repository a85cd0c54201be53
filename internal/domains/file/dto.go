package file

// UploadResp - POST /files/books/:bookId
type UploadResp struct {
	SecureURL string `json:"secureUrl"`
}

// Image is a stored cover ready to stream back to the client.
type Image struct {
	Data        []byte
	ContentType string
}
