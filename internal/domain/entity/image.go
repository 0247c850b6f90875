package entity

type Image struct {
	Data       []byte
	MIME       string
	SourceMIME string
	Width      int
	Height     int
}
