// Package clip wraps the system clipboard behind process-wide one-time
// initialization, shared by the paste and copy paths.
package clip

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

var (
	once    sync.Once
	initErr error
)

// Ready initializes the system clipboard on first call and returns the
// sticky result. Initialization fails on platforms without clipboard
// access (headless Linux without X11, for example).
func Ready() error {
	once.Do(func() {
		initErr = clipboard.Init()
	})
	if initErr != nil {
		return fmt.Errorf("failed to initialize clipboard: %w", initErr)
	}
	return nil
}

// ReadImage returns the clipboard's image payload, or nil when the
// clipboard holds no image.
func ReadImage() ([]byte, error) {
	if err := Ready(); err != nil {
		return nil, err
	}
	return clipboard.Read(clipboard.FmtImage), nil
}

// WriteImage places a PNG-encoded payload on the clipboard as an image.
func WriteImage(data []byte) error {
	if err := Ready(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}
