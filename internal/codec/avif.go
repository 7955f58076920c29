// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/gen2brain/avif"
)

// encodeAVIF writes the image as AVIF. The encoder has no channel for
// the EXIF payload (metadata lives in ISOBMFF boxes it does not expose),
// so a payload is dropped with a warning; metadata loss is never fatal.
func encodeAVIF(w io.Writer, img image.Image, quality int, exifPayload []byte) error {
	if len(exifPayload) > 0 {
		fmt.Fprintln(os.Stderr, "warning: AVIF output cannot carry the EXIF payload, metadata dropped")
	}
	if err := avif.Encode(w, img, avif.Options{Quality: quality}); err != nil {
		return fmt.Errorf("encoding AVIF: %w", err)
	}
	return nil
}
