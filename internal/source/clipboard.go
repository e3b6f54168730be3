package source

import (
	"fmt"

	"github.com/snipedit/snipedit/internal/clip"
)

// FromClipboard reads the system clipboard image payload and decodes it,
// the paste path. An empty or non-image clipboard fails with
// ErrNoImageFound.
func FromClipboard() (*Image, error) {
	data, err := clip.ReadImage()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: clipboard has no image payload", ErrNoImageFound)
	}
	return FromBytes(data)
}
