package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// uploadsRoot holds assets when object storage is not configured. Served by
// the /uploads static route.
const uploadsRoot = "uploads"

// EnsureUploadDir creates the local uploads root if it doesn't exist
func EnsureUploadDir() error {
	return os.MkdirAll(uploadsRoot, os.ModePerm)
}

// saveUpload writes a multipart upload under the uploads root. Keys may be
// namespaced ("assets/abc.png"); intermediate directories are created.
// Returns the URL path the asset is served from.
func saveUpload(fileHeader *multipart.FileHeader, key string) (string, error) {
	destPath := filepath.Join(uploadsRoot, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(destPath), nil
}
