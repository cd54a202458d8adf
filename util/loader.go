package util

import (
	"os"
	"path/filepath"
	"sort"
)

// ImageFile represents a digit image file queued for classification.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Data is the raw bytes of the image file.
	Data []byte
}

// LoadDirectoryImageFiles reads all image files from a directory, sorted by
// file name so batch runs are deterministic.
//
// Arguments:
// - dir: Directory path containing image files.
//
// Returns:
// - []ImageFile: Slice of ImageFile, each containing the raw bytes of an image file.
// - error: Error if loading fails.
func LoadDirectoryImageFiles(dir string) ([]ImageFile, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var images []ImageFile
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		switch filepath.Ext(file.Name()) {
		case ".jpg", ".jpeg", ".png", ".bmp":
			imgPath := filepath.Join(dir, file.Name())
			data, readErr := os.ReadFile(imgPath)
			if readErr != nil {
				return nil, readErr
			}
			images = append(images, ImageFile{
				Path: imgPath,
				Data: data,
			})
		}
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].Path < images[j].Path
	})

	return images, nil
}
