package domain

// Blob is a file selected by the operator, held in memory until submission.
type Blob struct {
	Name        string
	ContentType string
	Data        []byte
}

func (b Blob) Size() int64 {
	return int64(len(b.Data))
}
