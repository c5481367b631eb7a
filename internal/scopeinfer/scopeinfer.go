// Package scopeinfer seeds version_scopes from a go.work file when a
// config document omits it, grounded on the teacher's
// internal/workspace/workspace.go (modfile.ParseWork + per-module go.mod
// parsing to name each project). It is consulted only as a convenience
// default; an explicit version_scopes entry in config always wins, and a
// repository without go.work falls back to spec.md's documented [""].
package scopeinfer

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/dloez/tag-track/internal/filesystem"
)

// GoWorkFileName is the file scopeinfer looks for at the repository root.
const GoWorkFileName = "go.work"

// Infer returns one scope name per module listed in the go.work file at
// root, derived from each module's own go.mod (falling back to its use
// path's base name if go.mod is missing or unparsable). It returns
// (nil, false, nil) when root has no go.work file, signaling the caller
// to fall back to the single default scope.
func Infer(fs filesystem.FileSystem, root string) ([]string, bool, error) {
	workPath := filepath.Join(root, GoWorkFileName)
	if !fs.Exists(workPath) {
		return nil, false, nil
	}

	data, err := fs.ReadFile(workPath)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", workPath, err)
	}

	workFile, err := modfile.ParseWork(workPath, data, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse %s: %w", workPath, err)
	}

	seen := make(map[string]int)
	var scopes []string
	for _, use := range workFile.Use {
		name := moduleName(fs, filepath.Join(root, use.Path), use.Path)

		seen[name]++
		if seen[name] > 1 {
			name = fmt.Sprintf("%s-%d", name, seen[name])
		}
		scopes = append(scopes, name)
	}

	if len(scopes) == 0 {
		return nil, false, nil
	}
	return scopes, true, nil
}

// moduleName resolves a workspace member's scope name from its go.mod
// module path, falling back to the last segment of its use path when the
// go.mod is absent or fails to parse.
func moduleName(fs filesystem.FileSystem, projectPath, usePath string) string {
	goModPath := filepath.Join(projectPath, "go.mod")
	if fs.Exists(goModPath) {
		if data, err := fs.ReadFile(goModPath); err == nil {
			if modFile, err := modfile.Parse(goModPath, data, nil); err == nil && modFile.Module != nil {
				return lastSegment(modFile.Module.Mod.Path)
			}
		}
	}
	return lastSegment(usePath)
}

func lastSegment(path string) string {
	path = strings.TrimSuffix(path, "/")
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) == 0 {
		return path
	}
	last := parts[len(parts)-1]
	if last == "" || last == "." {
		return path
	}
	return last
}
