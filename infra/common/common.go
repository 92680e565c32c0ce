package common

import (
	"crypto/md5"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// skipDirs never affect the built images.
var skipDirs = map[string]bool{
	".git":      true,
	"infra":     true,
	"_examples": true,
}

// GenerateHash folds the md5 of every regular file under root into one
// hash, used as the image tag so unchanged sources reuse the image.
func GenerateHash(root string) (string, error) {
	var hash string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 || strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		fh, err := fileHash(path)
		if err != nil {
			return err
		}
		hash = appendHash(hash, fh)
		return nil
	})

	return hash, err
}

func fileHash(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func appendHash(hash1, hash2 string) string {
	h := md5.New()
	io.WriteString(h, hash1+hash2)
	return fmt.Sprintf("%x", h.Sum(nil))
}
