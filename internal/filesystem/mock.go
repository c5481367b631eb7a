package filesystem

import (
	"io/fs"
	"path/filepath"
)

// MockFileSystem provides an in-memory filesystem for testing
type MockFileSystem struct {
	files      map[string][]byte
	currentDir string
}

// NewMockFileSystem creates a new MockFileSystem
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:      make(map[string][]byte),
		currentDir: "/workspace",
	}
}

// AddFile adds a file to the mock filesystem
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	mfs.files[filepath.Clean(path)] = content
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	content, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, fs.ErrNotExist
	}
	return content, nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, exists := mfs.files[filepath.Clean(path)]
	return exists
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}
