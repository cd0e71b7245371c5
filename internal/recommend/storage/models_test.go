// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/hamadayuuki/irodori-api/internal/recommend/index/indextest"
	"github.com/hamadayuuki/irodori-api/internal/recommend/labels"
)

func wardrobeArtifact(t *testing.T) *Artifact {
	t.Helper()

	x := indextest.Wardrobe(t, "men")
	a := &Artifact{
		Metadata: Metadata{
			Segment:   "men",
			Version:   3,
			CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		TFIDF: make(map[string]TypeIndexRecord),
	}
	for _, g := range indextest.WardrobeGarments() {
		a.Items = append(a.Items, ItemRecord{
			ID:       string(g.ID),
			ItemType: g.Type.Label(),
			ItemName: g.Category,
			Color:    g.Attribute,
		})
	}
	for _, o := range indextest.WardrobeOutfits() {
		rec := OutfitRecord{ID: o.ID, ImageName: o.ImageName}
		for _, m := range o.Members {
			rec.Items = append(rec.Items, string(m))
		}
		a.Outfits = append(a.Outfits, rec)
	}
	for _, typ := range labels.AllTypes() {
		if ti, ok := x.TypeIndex(typ); ok {
			a.TFIDF[typ.Label()] = NewTypeIndexRecord(ti)
		}
	}
	return a
}

func writeJSON(t *testing.T, path string, v interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return raw
}

func TestStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := NewStore(filepath.Join(t.TempDir(), "models"), RequireChecksum())

	if err := store.Save(ctx, "men", wardrobeArtifact(t)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	for _, name := range []string{"men_model.json.gz", "men_model.json.gz.sha256"} {
		if _, err := os.Stat(filepath.Join(store.Dir(), name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}

	loaded, err := store.Load(ctx, "men")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := indextest.Wardrobe(t, "men")

	if loaded.Stats() != want.Stats() {
		t.Errorf("Stats() = %+v, want %+v", loaded.Stats(), want.Stats())
	}
	if id, ok := loaded.LookupExact(labels.Bottoms, "ワイドパンツ", "ブラックのワイドパンツ"); !ok || id != indextest.BlackWidePants.ID {
		t.Errorf("LookupExact() = (%q, %v)", id, ok)
	}
	if got := loaded.OutfitsContaining(indextest.GraySweater.ID); !reflect.DeepEqual(got, []string{"o1", "o4"}) {
		t.Errorf("OutfitsContaining() = %v", got)
	}

	for _, typ := range labels.AllTypes() {
		wantTI, wantOK := want.TypeIndex(typ)
		gotTI, gotOK := loaded.TypeIndex(typ)
		if wantOK != gotOK {
			t.Fatalf("%s sub-index presence = %v, want %v", typ, gotOK, wantOK)
		}
		if !wantOK {
			continue
		}
		if !reflect.DeepEqual(gotTI.Keys(), wantTI.Keys()) {
			t.Errorf("%s keys = %v, want %v", typ, gotTI.Keys(), wantTI.Keys())
		}
		query := labels.NormalizeText("ブラック ホワイト グレー")
		if got, exp := gotTI.Score(query), wantTI.Score(query); !reflect.DeepEqual(got, exp) {
			t.Errorf("%s scores = %v, want %v", typ, got, exp)
		}
	}
}

func TestStore_LoadUncompressedWithoutChecksum(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "women_model.json"), wardrobeArtifact(t))

	x, err := NewStore(dir).Load(context.Background(), "women")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if x.Segment() != "women" || x.Stats().Garments != 8 {
		t.Errorf("loaded index = %+v", x.Stats())
	}
}

func TestStore_Checksum(t *testing.T) {
	ctx := context.Background()

	t.Run("mismatch", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "men_model.json")
		writeJSON(t, path, wardrobeArtifact(t))
		if err := os.WriteFile(path+".sha256", []byte("deadbeef  men_model.json\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := NewStore(dir).Load(ctx, "men"); !errors.Is(err, ErrChecksumMismatch) {
			t.Errorf("Load() error = %v, want ErrChecksumMismatch", err)
		}
	})

	t.Run("missing but required", func(t *testing.T) {
		dir := t.TempDir()
		writeJSON(t, filepath.Join(dir, "men_model.json"), wardrobeArtifact(t))
		if _, err := NewStore(dir, RequireChecksum()).Load(ctx, "men"); !errors.Is(err, ErrChecksumMissing) {
			t.Errorf("Load() error = %v, want ErrChecksumMissing", err)
		}
	})

	t.Run("sha256sum format accepted", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStore(dir)
		if err := store.Save(ctx, "men", wardrobeArtifact(t)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		sidecar := filepath.Join(dir, "men_model.json.gz.sha256")
		digest, err := os.ReadFile(sidecar)
		if err != nil {
			t.Fatal(err)
		}
		line := string(digest[:64]) + "  men_model.json\n"
		if err := os.WriteFile(sidecar, []byte(line), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := store.Load(ctx, "men"); err != nil {
			t.Errorf("Load() error = %v", err)
		}
	})
}

func TestStore_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	if _, err := store.Load(context.Background(), "kids"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing artifact error = %v, want fs.ErrNotExist", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "broken_model.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(context.Background(), "broken"); !errors.Is(err, ErrInvalidArtifact) {
		t.Errorf("corrupt artifact error = %v, want ErrInvalidArtifact", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "zipped_model.json.gz"), []byte("plain"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(context.Background(), "zipped"); err == nil {
		t.Error("invalid gzip should fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Load(ctx, "broken"); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled load error = %v, want context.Canceled", err)
	}

	for _, name := range []string{"", "../men", `a\b`} {
		if err := store.Save(context.Background(), name, &Artifact{}); !errors.Is(err, ErrInvalidArtifact) {
			t.Errorf("Save(%q) error = %v, want ErrInvalidArtifact", name, err)
		}
	}
}

func TestStore_Segments(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"men_model.json.gz", "men_model.json", "women_model.json", "notes.txt", "men_model.json.gz.sha256"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "kids_model.json"), 0o750); err != nil {
		t.Fatal(err)
	}

	got, err := NewStore(dir).Segments()
	if err != nil {
		t.Fatalf("Segments() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"men", "women"}) {
		t.Errorf("Segments() = %v, want [men women]", got)
	}

	if _, err := NewStore(filepath.Join(dir, "absent")).Segments(); err == nil {
		t.Error("Segments() on a missing directory should fail")
	}
}

func TestBuildIndex(t *testing.T) {
	a := wardrobeArtifact(t)
	a.Items = append(a.Items,
		ItemRecord{ItemType: "pants", ItemName: "デニム", Color: "インディゴ"},
		ItemRecord{ItemType: "dress", ItemName: "ワンピース", Color: "レッド"},
	)
	a.ItemToOutfits = map[string][]string{string(indextest.BlackWidePants.ID): {"o2"}}
	a.Recs = map[string]map[string][]string{
		string(indextest.BlackWidePants.ID): {
			"トップス": {string(indextest.WhiteShirt.ID)},
			"dress":  {"x"},
		},
	}

	x, report, err := BuildIndex("men", a)
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}
	if report.SkippedItems != 1 || report.SkippedRelations != 1 {
		t.Errorf("report = %+v", report)
	}

	denim := labels.MakeIdentity(labels.Bottoms, "デニム", "インディゴ")
	if !x.Contains(denim) {
		t.Errorf("alias typed item with computed identity %q missing", denim)
	}
	if got := x.OutfitsContaining(indextest.BlackWidePants.ID); !reflect.DeepEqual(got, []string{"o2"}) {
		t.Errorf("OutfitsContaining() = %v, want explicit [o2]", got)
	}
	if got := x.CoOccurring(indextest.BlackWidePants.ID, labels.Tops); !reflect.DeepEqual(got, []labels.GarmentID{indextest.WhiteShirt.ID}) {
		t.Errorf("CoOccurring() = %v", got)
	}
}

func TestBuildIndex_InvalidSubIndex(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *Artifact)
	}{
		{
			name: "unknown type label",
			mutate: func(a *Artifact) {
				a.TFIDF["ドレス"] = a.TFIDF["トップス"]
			},
		},
		{
			name: "key count mismatch",
			mutate: func(a *Artifact) {
				r := a.TFIDF["トップス"]
				r.Keys = r.Keys[:1]
				a.TFIDF["トップス"] = r
			},
		},
		{
			name: "bad matrix",
			mutate: func(a *Artifact) {
				r := a.TFIDF["トップス"]
				r.Matrix.Indptr = []int{0}
				a.TFIDF["トップス"] = r
			},
		},
		{
			name: "empty vocabulary",
			mutate: func(a *Artifact) {
				r := a.TFIDF["トップス"]
				r.Vectorizer.Vocabulary = nil
				a.TFIDF["トップス"] = r
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := wardrobeArtifact(t)
			tt.mutate(a)
			if _, _, err := BuildIndex("men", a); !errors.Is(err, ErrInvalidArtifact) {
				t.Errorf("BuildIndex() error = %v, want ErrInvalidArtifact", err)
			}
		})
	}

	if _, _, err := BuildIndex("men", nil); !errors.Is(err, ErrInvalidArtifact) {
		t.Errorf("BuildIndex(nil) error = %v", err)
	}
}
