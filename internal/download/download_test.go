package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/extpack-labs/extpack/internal/faults"
)

func TestFetch(t *testing.T) {
	body := []byte("jar bytes here")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "sub", "dir", "out.jar")
	var last float64
	err := New().Fetch(context.Background(), srv.URL+"/out.jar", dest, func(f float64) {
		if f < last {
			t.Errorf("progress went backwards: %v after %v", f, last)
		}
		last = f
	})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if last != 1 {
		t.Errorf("final progress = %v, want 1", last)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(body) {
		t.Errorf("downloaded %q, want %q", data, body)
	}
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	err := New().Fetch(context.Background(), srv.URL+"/missing.jar",
		filepath.Join(t.TempDir(), "out.jar"), nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !faults.IsIO(err) {
		t.Errorf("error kind = %v, want io", faults.KindOf(err))
	}
}

func TestFetchCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New().Fetch(ctx, srv.URL, filepath.Join(t.TempDir(), "out.jar"), nil)
	if err == nil {
		t.Fatal("expected cancellation error, got nil")
	}
	if !faults.IsCanceled(err) {
		t.Errorf("error kind = %v, want canceled", faults.KindOf(err))
	}
}
