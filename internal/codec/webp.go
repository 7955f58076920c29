// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"

	"github.com/meshintelligence/asset-converter/pkg/types"
)

// encodeWebP writes the image as lossy WebP at the policy's maximum
// effort method and rewrites the container with an EXIF chunk when a
// payload is given.
func encodeWebP(w io.Writer, img image.Image, quality int, exifPayload []byte) error {
	opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
	if err != nil {
		return fmt.Errorf("configuring WebP encoder: %w", err)
	}
	opts.Method = types.Policies[types.KindWebP].WebPMethod

	if len(exifPayload) == 0 {
		return webp.Encode(w, img, opts)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, opts); err != nil {
		return err
	}
	out, err := insertWebPExif(buf.Bytes(), exifPayload, img.Bounds())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: embedding EXIF in WebP: %v\n", err)
		out = buf.Bytes()
	}
	_, err = w.Write(out)
	return err
}

// insertWebPExif appends an EXIF chunk to a RIFF WebP container. A
// simple (VP8-only) container is first wrapped in the extended VP8X
// layout, which is the only layout allowed to carry metadata chunks;
// bounds supplies the canvas size that the VP8X header records.
func insertWebPExif(data, payload []byte, bounds image.Rectangle) ([]byte, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		return nil, errors.New("not a RIFF WebP container")
	}
	chunks := data[12:]

	var out bytes.Buffer
	out.WriteString("RIFF\x00\x00\x00\x00WEBP")

	if len(chunks) >= 9 && string(chunks[0:4]) == "VP8X" {
		patched := append([]byte(nil), chunks...)
		patched[8] |= 0x08 // EXIF flag
		out.Write(patched)
	} else {
		vp8x := make([]byte, 18)
		copy(vp8x, "VP8X")
		binary.LittleEndian.PutUint32(vp8x[4:], 10)
		vp8x[8] = 0x08 // EXIF flag
		putUint24(vp8x[12:], uint32(bounds.Dx()-1))
		putUint24(vp8x[15:], uint32(bounds.Dy()-1))
		out.Write(vp8x)
		out.Write(chunks)
	}

	header := make([]byte, 8)
	copy(header, "EXIF")
	binary.LittleEndian.PutUint32(header[4:], uint32(len(payload)))
	out.Write(header)
	out.Write(payload)
	if len(payload)%2 == 1 {
		out.WriteByte(0) // RIFF chunks are even-aligned
	}

	b := out.Bytes()
	binary.LittleEndian.PutUint32(b[4:], uint32(len(b)-8))
	return b, nil
}

func putUint24(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}
