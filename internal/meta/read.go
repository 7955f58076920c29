// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package meta

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dsoprea/go-iptc"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
	"github.com/rwcarlsen/goexif/exif"
)

// IPTC record 2 dataset numbers for the descriptive fields.
const (
	iptcCaption   = 120
	iptcCopyright = 116
	iptcByline    = 80
	iptcKeywords  = 25
)

// Extract reads EXIF and IPTC descriptive metadata from a source image.
// Every failure mode (no metadata, corrupt segments, unsupported
// container) degrades to an empty or partial Record; Extract never
// fails.
func Extract(path string) Record {
	var rec Record
	readEXIF(path, &rec)
	if isJPEG(path) {
		readIPTC(path, &rec)
	}
	return rec
}

// readEXIF captures the raw EXIF block and, as a fallback for sources
// without IPTC, the descriptive EXIF fields.
func readEXIF(path string, rec *Record) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return
	}
	rec.RawEXIF = x.Raw

	if rec.Caption == "" {
		rec.Caption = exifString(x, exif.ImageDescription)
	}
	if rec.Copyright == "" {
		rec.Copyright = exifString(x, exif.Copyright)
	}
	if rec.Artist == "" {
		rec.Artist = exifString(x, exif.Artist)
	}
}

func exifString(x *exif.Exif, field exif.FieldName) string {
	tag, err := x.Get(field)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.Trim(s, "\x00"))
}

// readIPTC pulls the legacy IPTC fields from a JPEG container. IPTC
// values take precedence over anything readEXIF filled in.
func readIPTC(path string, rec *Record) {
	// The segment tooling panics on some malformed files; contain that
	// here so a bad source degrades instead of killing the run.
	defer func() { _ = recover() }()

	intfc, err := jpegstructure.NewJpegMediaParser().ParseFile(path)
	if err != nil {
		return
	}
	sl, ok := intfc.(*jpegstructure.SegmentList)
	if !ok {
		return
	}

	tags, err := sl.Iptc()
	if err != nil || len(tags) == 0 {
		return
	}

	if v := iptcString(tags, iptcCaption); v != "" {
		rec.Caption = v
	}
	if v := iptcString(tags, iptcCopyright); v != "" {
		rec.Copyright = v
	}
	if v := iptcString(tags, iptcByline); v != "" {
		rec.Artist = v
	}
	key := iptc.StreamTagKey{RecordNumber: 2, DatasetNumber: iptcKeywords}
	for _, td := range tags[key] {
		if kw := strings.TrimSpace(string(td)); kw != "" {
			rec.Keywords = append(rec.Keywords, kw)
		}
	}
}

func iptcString(tags map[iptc.StreamTagKey][]iptc.TagData, dataset uint8) string {
	key := iptc.StreamTagKey{RecordNumber: 2, DatasetNumber: dataset}
	values := tags[key]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(string(values[0]))
}

func isJPEG(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return true
	}
	return false
}
