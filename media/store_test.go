package media

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fileHeader builds a multipart.FileHeader the way net/http would.
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", name)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	w.Close()

	req, _ := http.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(MaxImageSize * 2); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File["image"][0]
}

func TestSaveWritesUnderDirectory(t *testing.T) {
	s := NewStore(t.TempDir())
	rel, err := s.Save(fileHeader(t, "Logo.PNG", []byte("png-bytes")), BusinessMainDir(42))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(rel, "business/42/main/") || !strings.HasSuffix(rel, ".png") {
		t.Fatalf("rel = %q", rel)
	}
	got, err := os.ReadFile(filepath.Join(s.Root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "png-bytes" {
		t.Errorf("content = %q", got)
	}

	if err := s.Remove(rel); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(rel); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}

func TestSaveRejectsBadUploads(t *testing.T) {
	s := NewStore(t.TempDir())
	if _, err := s.Save(fileHeader(t, "notes.txt", []byte("x")), ProfileDir); !errors.Is(err, ErrUnsupported) {
		t.Errorf("txt: %v", err)
	}
	big := bytes.Repeat([]byte{1}, MaxImageSize+1)
	if _, err := s.Save(fileHeader(t, "big.jpg", big), ProfileDir); !errors.Is(err, ErrTooLarge) {
		t.Errorf("oversize: %v", err)
	}
}

func TestDirectories(t *testing.T) {
	cases := map[string]string{
		BusinessMainDir(1):     "business/1/main",
		BusinessOptionalDir(2): "business/2/optional",
		ProductDir(3):          "business/3/products",
	}
	for got, want := range cases {
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}
