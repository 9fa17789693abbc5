package syncproxy

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreLoadBeforeSave(t *testing.T) {
	f, err := NewFileStore(filepath.Join(t.TempDir(), "blob.json"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Load(context.Background()); err != ErrNoBlob {
		t.Errorf("Load on empty store = %v, want ErrNoBlob", err)
	}
}

func TestFileStoreSaveReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "blob.json")
	f, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := f.Save(ctx, []byte(`{"v":1}`)); err != nil {
		t.Fatal(err)
	}
	if err := f.Save(ctx, []byte(`{"v":2}`)); err != nil {
		t.Fatal(err)
	}

	data, err := f.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"v":2}` {
		t.Errorf("data = %s", data)
	}

	// No temp file left behind after a completed save.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file still present: %v", err)
	}
}
