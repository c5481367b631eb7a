package scopeinfer

import (
	"testing"

	"github.com/dloez/tag-track/internal/filesystem"
)

func TestInfer_NoGoWorkFallsBackToDefault(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	scopes, ok, err := Infer(fs, "/workspace")
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}
	if ok {
		t.Fatal("expected ok=false when no go.work is present")
	}
	if scopes != nil {
		t.Fatalf("expected nil scopes, got %v", scopes)
	}
}

func TestInfer_NamesScopesFromModulePaths(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/go.work", []byte("go 1.21\nuse ./api\nuse ./worker\n"))
	fs.AddFile("/workspace/api/go.mod", []byte("module github.com/example/monorepo/api\n\ngo 1.21\n"))
	fs.AddFile("/workspace/worker/go.mod", []byte("module github.com/example/monorepo/worker\n\ngo 1.21\n"))

	scopes, ok, err := Infer(fs, "/workspace")
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true when go.work is present")
	}
	if len(scopes) != 2 || scopes[0] != "api" || scopes[1] != "worker" {
		t.Fatalf("unexpected scopes: %v", scopes)
	}
}

func TestInfer_FallsBackToUsePathWithoutGoMod(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/go.work", []byte("go 1.21\nuse ./legacy\n"))

	scopes, ok, err := Infer(fs, "/workspace")
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true when go.work is present")
	}
	if len(scopes) != 1 || scopes[0] != "legacy" {
		t.Fatalf("unexpected scopes: %v", scopes)
	}
}

func TestInfer_DeduplicatesCollidingModuleNames(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/go.work", []byte("go 1.21\nuse ./app1\nuse ./app2\n"))
	fs.AddFile("/workspace/app1/go.mod", []byte("module github.com/example/web\n\ngo 1.21\n"))
	fs.AddFile("/workspace/app2/go.mod", []byte("module github.com/other/web\n\ngo 1.21\n"))

	scopes, ok, err := Infer(fs, "/workspace")
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true when go.work is present")
	}
	if len(scopes) != 2 || scopes[0] != "web" || scopes[1] != "web-2" {
		t.Fatalf("unexpected scopes: %v", scopes)
	}
}

func TestInfer_MalformedGoWorkIsError(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/go.work", []byte("this is not a go.work file {{{"))

	_, _, err := Infer(fs, "/workspace")
	if err == nil {
		t.Fatal("expected an error for a malformed go.work file")
	}
}
