// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package meta

import (
	"fmt"
	"os/exec"
)

const exiftoolBin = "exiftool"

// runner abstracts tool execution for testing.
type runner interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) error
}

// osRunner is the production runner backed by os/exec.
type osRunner struct{}

func (osRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osRunner) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

var defaultRunner runner = osRunner{}

// WriteIPTC writes the record's descriptive fields into the legacy IPTC
// block of an already-saved JPEG, via exiftool. IPTC is a JPEG-only
// carrier; for every other output kind the EXIF payload embedded at
// encode time is the only channel and this must not be called.
//
// The caller treats a returned error as a warning: a missing exiftool
// binary or a failed write never fails the file's conversion.
func WriteIPTC(path string, rec Record) error {
	return writeIPTC(defaultRunner, path, rec)
}

func writeIPTC(r runner, path string, rec Record) error {
	args := []string{"-overwrite_original", "-codedcharacterset=utf8"}
	if rec.Caption != "" {
		args = append(args, "-IPTC:Caption-Abstract="+rec.Caption)
	}
	if rec.Copyright != "" {
		args = append(args, "-IPTC:CopyrightNotice="+rec.Copyright)
	}
	if rec.Artist != "" {
		args = append(args, "-IPTC:By-line="+rec.Artist)
	}
	for _, kw := range rec.Keywords {
		args = append(args, "-IPTC:Keywords="+kw)
	}
	if len(args) == 2 {
		return nil // nothing to write
	}
	args = append(args, path)

	if _, err := r.LookPath(exiftoolBin); err != nil {
		return fmt.Errorf("%s not available: %w", exiftoolBin, err)
	}
	if err := r.Run(exiftoolBin, args...); err != nil {
		return fmt.Errorf("writing IPTC to %s: %w", path, err)
	}
	return nil
}
