package utils

import (
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
	"github.com/sqweek/dialog"
)

// AskForFile opens a native file picker and returns the chosen path.
func AskForFile(title, startingDir string) (string, error) {
	return dialog.File().SetStartDir(startingDir).Title(title).Load()
}

// LoadFile loads the given file and performs decompression if
// necessary. ROM images inside .zip, .7z and .gz archives are
// extracted; the first file of an archive is assumed to be the ROM.
func LoadFile(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	var decoder io.Reader
	switch filepath.Ext(filename) {
	case ".gz":
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		decoder, err = gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
	case ".zip":
		r, err := zip.NewReader(f, int64(len(data)))
		if err != nil {
			return nil, err
		}
		decoder, err = r.File[0].Open()
		if err != nil {
			return nil, err
		}
	case ".7z":
		r, err := sevenzip.NewReader(f, int64(len(data)))
		if err != nil {
			return nil, err
		}
		decoder, err = r.File[0].Open()
		if err != nil {
			return nil, err
		}
	default:
		// not an archive; return the data as is
		return data, nil
	}

	return io.ReadAll(decoder)
}
