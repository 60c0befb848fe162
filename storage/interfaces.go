package storage

import "xlister/models"

// ListingWriter is the interface any export backend must satisfy.
type ListingWriter interface {
	Write(listings []*models.Listing) error
	Close() error
}

// Export writes listings through w and always closes it. A write error takes
// precedence over the close error.
func Export(w ListingWriter, listings []*models.Listing) error {
	if err := w.Write(listings); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
