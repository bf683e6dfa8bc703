package cache

import (
	"bytes"
	"testing"

	"github.com/FocuswithJustin/PageTEI/core/metadata"
)

func TestKeyDependsOnInputAndMetadata(t *testing.T) {
	input := []byte("<PcGts/>")
	meta := metadata.Defaults(metadata.EditionDiplomatic)

	k1 := Key(input, meta)
	k2 := Key(input, meta)
	if k1 != k2 {
		t.Error("key must be deterministic")
	}

	if k := Key([]byte("<PcGts><Page/></PcGts>"), meta); k == k1 {
		t.Error("different input must change the key")
	}

	other := meta
	other.Title = "Different title"
	if k := Key(input, other); k == k1 {
		t.Error("different metadata must change the key")
	}
}

func TestKeyNotConfusedByFieldBoundaries(t *testing.T) {
	// "ab" + "c" and "a" + "bc" in adjacent fields must not collide.
	a := metadata.Metadata{Title: "ab", Author: "c"}
	b := metadata.Metadata{Title: "a", Author: "bc"}
	input := []byte("x")
	if Key(input, a) == Key(input, b) {
		t.Error("field boundary shift must change the key")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	key := Key([]byte("input"), metadata.Metadata{})
	want := []byte("<TEI/>")

	if _, ok := store.Get(key); ok {
		t.Fatal("fresh store should miss")
	}

	store.Put(key, want)
	got, ok := store.Get(key)
	if !ok {
		t.Fatal("Get missed after Put")
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get = %q, want %q", got, want)
	}
}

func TestStoreMissOnUnknownKey(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, ok := store.Get(HashInput([]byte("never stored"))); ok {
		t.Error("unknown key should miss")
	}
}

func TestHashInputStable(t *testing.T) {
	a := HashInput([]byte("same"))
	b := HashInput([]byte("same"))
	if a != b {
		t.Error("hash must be deterministic")
	}
	if a == HashInput([]byte("different")) {
		t.Error("different input must hash differently")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}
