// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
)

// encodePNG writes the image as PNG at the fixed mid-level compression
// and splices an eXIf chunk in when a payload is given. Quality does not
// apply to PNG.
func encodePNG(w io.Writer, img image.Image, exifPayload []byte) error {
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	out := buf.Bytes()
	if len(exifPayload) > 0 {
		out = insertPNGChunk(out, "eXIf", exifPayload)
	}
	_, err := w.Write(out)
	return err
}

// insertPNGChunk splices an ancillary chunk immediately after IHDR. The
// stream layout is the 8-byte signature followed by
// length/type/data/CRC chunks, IHDR first by definition; a stream too
// short to hold that comes back unchanged.
func insertPNGChunk(data []byte, chunkType string, payload []byte) []byte {
	const sigLen = 8
	if len(data) < sigLen+8 {
		return data
	}
	ihdrLen := int(binary.BigEndian.Uint32(data[sigLen:]))
	ihdrEnd := sigLen + 8 + ihdrLen + 4
	if len(data) < ihdrEnd {
		return data
	}

	chunk := make([]byte, 8+len(payload)+4)
	binary.BigEndian.PutUint32(chunk, uint32(len(payload)))
	copy(chunk[4:8], chunkType)
	copy(chunk[8:], payload)
	crc := crc32.ChecksumIEEE(chunk[4 : 8+len(payload)])
	binary.BigEndian.PutUint32(chunk[8+len(payload):], crc)

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:ihdrEnd]...)
	out = append(out, chunk...)
	out = append(out, data[ihdrEnd:]...)
	return out
}
