// Package media resolves post images: an external URL kept verbatim, or an
// uploaded file written to the upload directory.
package media

// Source is where a post image comes from. The concrete types are URLSource
// and FileSource; a nil Source means "no image supplied".
type Source interface {
	isSource()
}

// URLSource references an image hosted elsewhere.
type URLSource struct {
	URL string
}

// FileSource carries an uploaded image.
type FileSource struct {
	Filename string
	Data     []byte
}

func (URLSource) isSource()  {}
func (FileSource) isSource() {}
