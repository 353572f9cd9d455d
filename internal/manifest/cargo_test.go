package manifest

import (
	"strings"
	"testing"
)

const sampleMetadataJSON = `{
  "packages": [
    {
      "id": "path+file:///ws/crates/a#a@0.1.0",
      "name": "a",
      "version": "0.1.0",
      "manifest_path": "/ws/crates/a/Cargo.toml",
      "dependencies": [
        {"name": "b", "kind": null},
        {"name": "serde", "kind": null},
        {"name": "a-test-helpers", "kind": "dev"}
      ]
    },
    {
      "id": "path+file:///ws/crates/b#b@0.1.0",
      "name": "b",
      "version": "0.1.0",
      "manifest_path": "/ws/crates/b/Cargo.toml",
      "dependencies": [
        {"name": "a", "kind": null}
      ]
    }
  ],
  "workspace_members": [
    "path+file:///ws/crates/a#a@0.1.0",
    "path+file:///ws/crates/b#b@0.1.0"
  ],
  "workspace_root": "/ws"
}`

func TestDecodeMetadata(t *testing.T) {
	meta, err := DecodeMetadata(strings.NewReader(sampleMetadataJSON))
	if err != nil {
		t.Fatalf("DecodeMetadata failed: %v", err)
	}

	if len(meta.Packages) != 2 {
		t.Fatalf("Expected 2 packages, got %d", len(meta.Packages))
	}
	if meta.WorkspaceRoot != "/ws" {
		t.Errorf("Unexpected workspace root: %q", meta.WorkspaceRoot)
	}

	a := meta.PackageByName("a")
	if a == nil {
		t.Fatal("Package a not found")
	}
	if len(a.Dependencies) != 3 {
		t.Fatalf("Expected 3 dependencies, got %d", len(a.Dependencies))
	}
	if a.Dependencies[0].Kind != KindNormal {
		t.Errorf("null kind should decode as normal, got %q", a.Dependencies[0].Kind)
	}
	if a.Dependencies[2].Kind != KindDev {
		t.Errorf("Expected dev kind, got %q", a.Dependencies[2].Kind)
	}
}

func TestDecodeMetadata_Invalid(t *testing.T) {
	if _, err := DecodeMetadata(strings.NewReader("not json")); err == nil {
		t.Error("Expected error for malformed metadata")
	}
}

func TestMetadataCommand_Args(t *testing.T) {
	args := MetadataCommand{}.args()
	want := []string{"metadata", "--format-version", "1", "--no-deps"}
	if len(args) != len(want) {
		t.Fatalf("Unexpected args: %v", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("Unexpected args: %v", args)
		}
	}

	args = MetadataCommand{ManifestPath: "sub/Cargo.toml"}.args()
	if args[len(args)-2] != "--manifest-path" || args[len(args)-1] != "sub/Cargo.toml" {
		t.Errorf("Manifest path not forwarded: %v", args)
	}
}
