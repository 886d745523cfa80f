package memory

import (
	"context"
	"io"
	"strings"
	"testing"

	"claimcore/internal/blob/core"
)

func TestPutGetDelete(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.Put(ctx, "docs/a.txt", strings.NewReader("alpha"), core.PutOptions{ContentType: "text/plain"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.Put(ctx, "docs/a.txt", strings.NewReader("again"), core.PutOptions{}); err == nil {
		t.Fatal("expected duplicate put to fail")
	}

	info, rc, err := store.Get(ctx, "docs/a.txt")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "alpha" || info.ContentType != "text/plain" {
		t.Fatalf("unexpected blob: %q %+v", body, info)
	}

	ok, err := store.Delete(ctx, "docs/a.txt")
	if err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	ok, err = store.Delete(ctx, "docs/a.txt")
	if err != nil || ok {
		t.Fatalf("second delete should be false: %v %v", ok, err)
	}
}

func TestListOrdersByKey(t *testing.T) {
	store := New()
	ctx := context.Background()
	for _, key := range []string{"b", "a", "c"} {
		if _, err := store.Put(ctx, key, strings.NewReader(key), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	infos, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 3 || infos[0].Key != "a" || infos[2].Key != "c" {
		t.Fatalf("unexpected order: %+v", infos)
	}
}

func TestPresignUnsupported(t *testing.T) {
	if _, err := New().PresignURL(context.Background(), "k", core.SignedURLOptions{}); err != core.ErrUnsupported {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
