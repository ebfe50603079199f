// Package catalog discovers installer images in the configured input directory.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kdomanski/iso9660"
)

// ErrDirMissing reports that the images directory does not exist.
var ErrDirMissing = errors.New("images directory does not exist")

// ErrNoImages reports that the images directory holds no recognized image file.
var ErrNoImages = errors.New("no installer images found")

// Image is one discovered installer image.
type Image struct {
	Name  string // filename within the images directory
	Path  string
	Label string // ISO 9660 volume identifier, best effort — empty for raw images
}

// String renders the image for a pick list, with the volume label when known.
func (i Image) String() string {
	if i.Label == "" {
		return i.Name
	}
	return fmt.Sprintf("%s  (%s)", i.Name, i.Label)
}

// Discover lists the image files in dir whose extension is in extensions,
// preserving directory-listing order. A missing directory and an empty result
// are both errors: the operator has to create the directory or drop an image
// into it before anything can be provisioned.
func Discover(dir string, extensions []string) ([]Image, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirMissing, dir)
		}
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var images []Image
	for _, e := range entries {
		if e.IsDir() || !recognized(e.Name(), extensions) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		images = append(images, Image{
			Name:  e.Name(),
			Path:  path,
			Label: volumeLabel(path),
		})
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, dir)
	}
	return images, nil
}

func recognized(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// volumeLabel reads the primary volume identifier of an ISO 9660 image.
// Raw .img files and unreadable images yield an empty label; discovery never
// fails on a probe.
func volumeLabel(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	img, err := iso9660.OpenImage(f)
	if err != nil {
		return ""
	}
	label, err := img.Label()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(label)
}
