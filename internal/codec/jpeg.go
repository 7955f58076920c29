// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"

	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
)

// exifPrefix is the APP1 signature preceding the TIFF block in a JPEG.
var exifPrefix = []byte("Exif\x00\x00")

// encodeJPEG writes the image as JPEG and splices the EXIF APP1 segment
// into the produced stream. The encoder subsamples chroma at 4:2:0 for
// color images; it emits baseline scans only, so the progressive policy
// entry has no effect with this backend.
func encodeJPEG(w io.Writer, img image.Image, quality int, exifPayload []byte) error {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("encoding JPEG: %w", err)
	}
	if len(exifPayload) == 0 {
		_, err := w.Write(buf.Bytes())
		return err
	}

	out, err := spliceJPEGExif(buf.Bytes(), exifPayload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: embedding EXIF in JPEG: %v\n", err)
		out = buf.Bytes()
	}
	_, err = w.Write(out)
	return err
}

// spliceJPEGExif inserts an EXIF APP1 segment directly after the SOI
// marker of an already-encoded JPEG stream.
func spliceJPEGExif(jpg, payload []byte) ([]byte, error) {
	intfc, err := jpegstructure.NewJpegMediaParser().ParseBytes(jpg)
	if err != nil {
		return nil, fmt.Errorf("parsing JPEG segments: %w", err)
	}
	sl, ok := intfc.(*jpegstructure.SegmentList)
	if !ok {
		return nil, fmt.Errorf("unexpected media context %T", intfc)
	}

	segments := sl.Segments()
	if len(segments) == 0 {
		return nil, fmt.Errorf("JPEG stream has no segments")
	}

	data := make([]byte, 0, len(exifPrefix)+len(payload))
	data = append(data, exifPrefix...)
	data = append(data, payload...)
	exifSegment := &jpegstructure.Segment{
		MarkerId: jpegstructure.MARKER_APP1,
		Data:     data,
	}

	spliced := make([]*jpegstructure.Segment, 0, len(segments)+1)
	spliced = append(spliced, segments[0], exifSegment)
	spliced = append(spliced, segments[1:]...)

	var buf bytes.Buffer
	if err := jpegstructure.NewSegmentList(spliced).Write(&buf); err != nil {
		return nil, fmt.Errorf("writing JPEG segments: %w", err)
	}
	return buf.Bytes(), nil
}
