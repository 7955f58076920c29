// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package meta

import (
	"fmt"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

// BuildEXIF serializes the record into a TIFF-form EXIF payload for
// embedding in the output image. The payload is seeded from the source's
// original block when one was extracted, otherwise from an empty
// skeleton. The embedded thumbnail IFD is always dropped: a thumbnail of
// the pre-resize raster would be stale and is never regenerated.
//
// A nil return means no payload could be built; the caller embeds
// nothing and the conversion continues.
func BuildEXIF(rec Record) (payload []byte, err error) {
	// The EXIF encoder panics on inputs it cannot represent.
	defer func() {
		if r := recover(); r != nil {
			payload = nil
			err = fmt.Errorf("encoding EXIF: %v", r)
		}
	}()

	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, fmt.Errorf("loading IFD mapping: %w", err)
	}
	ti := exif.NewTagIndex()

	var rootIb *exif.IfdBuilder
	if len(rec.RawEXIF) > 0 {
		if _, index, err := exif.Collect(im, ti, rec.RawEXIF); err == nil {
			rootIb = exif.NewIfdBuilderFromExistingChain(index.RootIfd)
		}
	}
	if rootIb == nil {
		rootIb = exif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder)
	}

	// Drop IFD1 and its thumbnail.
	rootIb.SetNextIb(nil)

	if rec.Caption != "" {
		if err := rootIb.SetStandardWithName("ImageDescription", rec.Caption); err != nil {
			return nil, fmt.Errorf("setting ImageDescription: %w", err)
		}
	}
	if rec.Copyright != "" {
		if err := rootIb.SetStandardWithName("Copyright", rec.Copyright); err != nil {
			return nil, fmt.Errorf("setting Copyright: %w", err)
		}
	}
	if rec.Artist != "" {
		if err := rootIb.SetStandardWithName("Artist", rec.Artist); err != nil {
			return nil, fmt.Errorf("setting Artist: %w", err)
		}
	}

	ibe := exif.NewIfdByteEncoder()
	payload, err = ibe.EncodeToExif(rootIb)
	if err != nil {
		return nil, fmt.Errorf("encoding EXIF: %w", err)
	}
	return payload, nil
}
