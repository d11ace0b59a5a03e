package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleCatalog() Catalog {
	return Catalog{
		{ID: "a", Name: "Bayam", Category: CategoryFresh, Price: 5000, Unit: "ikat"},
		{ID: "b", Name: "Keripik", Category: CategorySnacks, Price: 15000, Unit: "pack"},
		{ID: "c", Name: "Wortel", Category: CategoryFresh, Price: 10000, Unit: "kg"},
		{ID: "d", Name: "Beras", Category: CategoryDry, Price: 21000, Unit: "kg"},
	}
}

func TestFilter_IsOrderedSubsequence(t *testing.T) {
	c := sampleCatalog()
	selectors := append([]Category{CategoryAll}, Categories()...)
	for _, sel := range selectors {
		t.Run(string(sel), func(t *testing.T) {
			got := Filter(c, sel)

			// Every element matches the selector.
			for _, p := range got {
				if sel != CategoryAll && p.Category != sel {
					t.Fatalf("Filter(%q) returned %q in category %q", sel, p.ID, p.Category)
				}
			}

			// got is a subsequence of c in the same order.
			j := 0
			for _, p := range c {
				if j < len(got) && got[j].ID == p.ID {
					j++
				}
			}
			if j != len(got) {
				t.Fatalf("Filter(%q) = %v, not an ordered subsequence", sel, got)
			}

			// Nothing matching was dropped.
			want := 0
			for _, p := range c {
				if sel == CategoryAll || p.Category == sel {
					want++
				}
			}
			if len(got) != want {
				t.Fatalf("Filter(%q) returned %d products, want %d", sel, len(got), want)
			}
		})
	}
}

func TestFilter_DoesNotAliasInput(t *testing.T) {
	c := sampleCatalog()
	got := Filter(c, CategoryAll)
	got[0].Name = "changed"
	if c[0].Name != "Bayam" {
		t.Fatalf("Filter result aliases input catalog")
	}
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"", CategoryAll, true},
		{" all ", CategoryAll, true},
		{"fresh produce", CategoryFresh, true},
		{"Healthy Snacks", CategorySnacks, true},
		{"DRY PROCESSED", CategoryDry, true},
		{"frozen", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseCategory(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseCategory(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSelectorCycle(t *testing.T) {
	sel := CategoryAll
	seen := []Category{sel}
	for range 4 {
		sel = NextSelector(sel)
		seen = append(seen, sel)
	}
	want := []Category{CategoryAll, CategoryFresh, CategorySnacks, CategoryDry, CategoryAll}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Fatalf("NextSelector cycle mismatch (-want +got):\n%s", diff)
	}
	if got := PrevSelector(CategoryAll); got != CategoryDry {
		t.Fatalf("PrevSelector(All) = %q, want %q", got, CategoryDry)
	}
	if got := NextSelector("bogus"); got != CategoryAll {
		t.Fatalf("NextSelector(bogus) = %q, want All", got)
	}
}

func TestEqual_StructuralComparison(t *testing.T) {
	a := sampleCatalog()
	b := sampleCatalog()
	if !Equal(a, b) {
		t.Fatalf("Equal on identical catalogs = false")
	}
	b[2].Price = 10001
	if Equal(a, b) {
		t.Fatalf("Equal ignored a price change")
	}
	if !Equal(nil, Catalog{}) {
		t.Fatalf("Equal(nil, empty) = false, want true")
	}
	swapped := sampleCatalog()
	swapped[0], swapped[1] = swapped[1], swapped[0]
	if Equal(a, swapped) {
		t.Fatalf("Equal ignored an order change")
	}
}

func TestEncodeDecode_EmptyIsArray(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode(nil) error: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("Encode(nil) = %s, want []", data)
	}
	got, err := Decode([]byte("null"))
	if err != nil {
		t.Fatalf("Decode(null) error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("Decode(null) = %#v, want empty catalog", got)
	}
}

func TestUpdate_MergesOnlyTargetFields(t *testing.T) {
	c := sampleCatalog()
	next, err := Update(c, "a", Patch{Price: FloatPtr(7500)})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	want := sampleCatalog()
	want[0].Price = 7500
	if diff := cmp.Diff(want, next); diff != "" {
		t.Fatalf("Update mismatch (-want +got):\n%s", diff)
	}
	if c[0].Price != 5000 {
		t.Fatalf("Update modified its input: price = %v", c[0].Price)
	}
}

func TestUpdate_Rejections(t *testing.T) {
	c := sampleCatalog()

	if _, err := Update(c, "missing", Patch{Name: StringPtr("x")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := Update(c, "a", Patch{Price: FloatPtr(-1)}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("Update(negative price) error = %v, want ErrInvalidPrice", err)
	}
	if _, err := Update(c, "a", Patch{Category: CategoryPtr("Frozen")}); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("Update(bad category) error = %v, want ErrInvalidCategory", err)
	}
	if _, err := Update(c, "a", Patch{Category: CategoryPtr(CategoryAll)}); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("Update(All) error = %v, want ErrInvalidCategory", err)
	}
}

func TestPrependAndRemove(t *testing.T) {
	c := sampleCatalog()
	p := Placeholder("new")
	next := Prepend(c, p)
	if len(next) != len(c)+1 || next[0].ID != "new" {
		t.Fatalf("Prepend = %v, want new product first", next)
	}
	if len(c) != 4 {
		t.Fatalf("Prepend modified input length: %d", len(c))
	}

	removed, err := Remove(next, "b")
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, _, ok := removed.Find("b"); ok {
		t.Fatalf("Remove left product b in catalog")
	}
	if len(removed) != len(next)-1 {
		t.Fatalf("Remove len = %d, want %d", len(removed), len(next)-1)
	}
	if _, err := Remove(c, "zzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Remove(missing) error = %v, want ErrNotFound", err)
	}
}

func TestPlaceholderDefaults(t *testing.T) {
	p := Placeholder("p_1")
	if p.ID != "p_1" || p.Name != "Produk Baru" || p.Category != CategoryFresh ||
		p.Price != 0 || p.Unit != "kg" {
		t.Fatalf("Placeholder = %#v, unexpected defaults", p)
	}
	if !strings.HasPrefix(p.Image, "https://picsum.photos/seed/") {
		t.Fatalf("Placeholder image = %q, want picsum seed URL", p.Image)
	}
}

func TestNewID_PrefixedAndDistinct(t *testing.T) {
	a, b := NewID(), NewID()
	if !strings.HasPrefix(a, "p_") {
		t.Fatalf("NewID = %q, want p_ prefix", a)
	}
	if a == b {
		t.Fatalf("NewID returned the same id twice: %q", a)
	}
}

func TestDefaults_AreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Defaults() {
		if seen[p.ID] {
			t.Fatalf("duplicate default id %q", p.ID)
		}
		seen[p.ID] = true
		if !p.Category.Valid() {
			t.Fatalf("default %q has invalid category %q", p.ID, p.Category)
		}
		if p.Price < 0 {
			t.Fatalf("default %q has negative price", p.ID)
		}
	}
}
