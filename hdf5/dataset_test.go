package hdf5

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeTestFile creates a file, lets build populate the root group and
// reopens the result for reading.
func writeTestFile(t *testing.T, build func(root *Group)) *File {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "hdf5-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	testFile := filepath.Join(tmpDir, "test.h5")
	f, err := Create(testFile)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	build(f.Root())
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f2, err := Open(testFile)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { f2.Close() })
	return f2
}

func mustCreate(t *testing.T, g *Group, name string, data interface{}, opts ...DatasetOption) {
	t.Helper()
	if _, err := g.CreateDataset(name, data, opts...); err != nil {
		t.Fatalf("CreateDataset %s failed: %v", name, err)
	}
}

func TestReadText(t *testing.T) {
	f := writeTestFile(t, func(root *Group) {
		mustCreate(t, root, "fixed", "Hermes", WithStringSize(16))
		mustCreate(t, root, "exact", "Hermes", WithStringSize(6))
		mustCreate(t, root, "varlen", []string{"Hermes", "Rock"})
		mustCreate(t, root, "empty_varlen", []string{""})
		mustCreate(t, root, "bytes", []uint8("Hermes\x00\x00"))
	})

	tests := map[string]string{
		"fixed":        "Hermes",
		"exact":        "Hermes",
		"varlen":       "Hermes",
		"empty_varlen": "",
		"bytes":        "Hermes",
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			ds, err := f.OpenDataset(name)
			if err != nil {
				t.Fatalf("OpenDataset failed: %v", err)
			}
			got, err := ds.ReadText()
			if err != nil {
				t.Fatalf("ReadText failed: %v", err)
			}
			if got != want {
				t.Errorf("ReadText = %q, want %q", got, want)
			}
		})
	}
}

func TestReadStringVarLen(t *testing.T) {
	f := writeTestFile(t, func(root *Group) {
		mustCreate(t, root, "names", []string{"first", "", "third"})
	})

	ds, err := f.OpenDataset("names")
	if err != nil {
		t.Fatalf("OpenDataset failed: %v", err)
	}
	if got := ds.DtypeClass().String(); got != "variable-length" {
		t.Errorf("DtypeClass = %s, want variable-length", got)
	}
	got, err := ds.ReadString()
	if err != nil {
		t.Fatalf("ReadString failed: %v", err)
	}
	if want := []string{"first", "", "third"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ReadString = %q, want %q", got, want)
	}
}

func TestReadTextMismatch(t *testing.T) {
	f := writeTestFile(t, func(root *Group) {
		mustCreate(t, root, "float", []float64{1})
		mustCreate(t, root, "int32", []int32{72, 101})
	})

	for _, name := range []string{"float", "int32"} {
		ds, err := f.OpenDataset(name)
		if err != nil {
			t.Fatalf("OpenDataset %s failed: %v", name, err)
		}
		if _, err := ds.ReadText(); !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("%s: ReadText error = %v, want ErrTypeMismatch", name, err)
		}
	}
}

func TestReadNumeric(t *testing.T) {
	cube := [][][]float64{
		{{0, 1}, {10, 11}, {20, 21}},
		{{100, 101}, {110, 111}, {120, 121}},
	}
	f := writeTestFile(t, func(root *Group) {
		mustCreate(t, root, "cube", cube)
		mustCreate(t, root, "counts", []int64{3, -1, 4})
		mustCreate(t, root, "small", []uint16{7, 8})
		mustCreate(t, root, "label", []string{"eV"})
	})

	ds, err := f.OpenDataset("cube")
	if err != nil {
		t.Fatalf("OpenDataset failed: %v", err)
	}
	if got, want := ds.Shape(), []uint64{2, 3, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("Shape = %v, want %v", got, want)
	}
	data, err := ds.ReadNumeric()
	if err != nil {
		t.Fatalf("ReadNumeric failed: %v", err)
	}
	want := []float64{0, 1, 10, 11, 20, 21, 100, 101, 110, 111, 120, 121}
	if !reflect.DeepEqual(data, want) {
		t.Errorf("ReadNumeric = %v, want %v", data, want)
	}

	for name, want := range map[string][]float64{"counts": {3, -1, 4}, "small": {7, 8}} {
		ds, err := f.OpenDataset(name)
		if err != nil {
			t.Fatalf("OpenDataset %s failed: %v", name, err)
		}
		got, err := ds.ReadNumeric()
		if err != nil {
			t.Fatalf("%s: ReadNumeric failed: %v", name, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: ReadNumeric = %v, want %v", name, got, want)
		}
	}

	label, err := f.OpenDataset("label")
	if err != nil {
		t.Fatalf("OpenDataset failed: %v", err)
	}
	if _, err := label.ReadNumeric(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("ReadNumeric on strings: error = %v, want ErrTypeMismatch", err)
	}
}

func TestCreateDatasetRagged(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "hdf5-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	f, err := Create(filepath.Join(tmpDir, "ragged.h5"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer f.Close()

	if _, err := f.Root().CreateDataset("ragged", [][]float64{{1, 2}, {3}}); err == nil {
		t.Error("expected an error for ragged data")
	}
}

func TestCreateDeepGroups(t *testing.T) {
	f := writeTestFile(t, func(root *Group) {
		entry, err := root.CreateGroup("entry1")
		if err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		collection, err := entry.CreateGroup("collection")
		if err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		counter, err := entry.CreateGroup("Counter0")
		if err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		// written after the sibling group, so the parent is rewritten twice
		mustCreate(t, collection, "beamline", "Hermes", WithStringSize(8))
		mustCreate(t, counter, "energy", []float64{700, 710}, WithAttribute("units", "eV"))
	})

	ds, err := f.OpenDataset("/entry1/collection/beamline")
	if err != nil {
		t.Fatalf("OpenDataset failed: %v", err)
	}
	if s, err := ds.ReadText(); err != nil || s != "Hermes" {
		t.Errorf("ReadText = %q, %v; want Hermes", s, err)
	}

	entry, err := f.OpenGroup("entry1")
	if err != nil {
		t.Fatalf("OpenGroup failed: %v", err)
	}
	members, err := entry.Members()
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("entry1 members = %v, want collection and Counter0", members)
	}

	attr, err := f.GetAttr("entry1/Counter0/energy@units")
	if err != nil {
		t.Fatalf("GetAttr failed: %v", err)
	}
	if s, err := attr.ReadText(); err != nil || s != "eV" {
		t.Errorf("attribute ReadText = %q, %v; want eV", s, err)
	}
	if _, err := f.GetAttr("entry1/Counter0/energy@offset"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAttr missing: error = %v, want ErrNotFound", err)
	}
}

func TestWalkOrder(t *testing.T) {
	f := writeTestFile(t, func(root *Group) {
		ctx, err := root.CreateGroup("context")
		if err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		mustCreate(t, ctx, "energies", []float64{1, 2})
	})

	var paths []string
	err := Walk(f.Root(), func(path string, obj interface{}, err error) error {
		if err != nil {
			t.Errorf("%s: %v", path, err)
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if want := []string{"/", "/context", "/context/energies"}; !reflect.DeepEqual(paths, want) {
		t.Errorf("Walk visited %v, want %v", paths, want)
	}
}

func TestParseAttrPath(t *testing.T) {
	tests := []struct {
		path       string
		wantObject string
		wantAttr   string
		wantErr    bool
	}{
		{"/@creator", "/", "creator", false},
		{"/entry1@NX_class", "/entry1", "NX_class", false},
		{"entry1/Counter0/energy@units", "/entry1/Counter0/energy", "units", false},
		{"entry1/data/@signal", "/entry1/data", "signal", false},
		{"", "", "", true},
		{"/entry1/data", "", "", true},
		{"/entry1@", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			obj, attr, err := ParseAttrPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPath) {
					t.Errorf("expected ErrInvalidPath for %q, got %v", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.path, err)
			}
			if obj != tt.wantObject || attr != tt.wantAttr {
				t.Errorf("ParseAttrPath(%q) = %q, %q; want %q, %q", tt.path, obj, attr, tt.wantObject, tt.wantAttr)
			}
		})
	}
}
