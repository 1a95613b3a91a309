package utils

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, header, err := req.FormFile(field)
	require.NoError(t, err)
	return header
}

func chtemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestSaveUploadNamespacedKey(t *testing.T) {
	chtemp(t)

	header := multipartFile(t, "image", "artifact.png", []byte("png-bytes"))
	url, err := saveUpload(header, "assets/artifact.png")
	require.NoError(t, err)
	require.Equal(t, "/uploads/assets/artifact.png", url)

	data, err := os.ReadFile(filepath.Join("uploads", "assets", "artifact.png"))
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), data)
}

func TestStoreAssetLocalFallback(t *testing.T) {
	// No R2 client configured: assets land under uploads/.
	require.False(t, R2Ready())
	chtemp(t)

	header := multipartFile(t, "image", "artifact.png", []byte("png-bytes"))
	url, err := StoreAsset(header, "assets/artifact.png")
	require.NoError(t, err)
	require.Equal(t, "/uploads/assets/artifact.png", url)

	_, err = os.Stat(filepath.Join("uploads", "assets", "artifact.png"))
	require.NoError(t, err)
}
