package file_io

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockFileIO is a mock type for the FileIO type
type MockFileIO struct {
	mock.Mock
}

// GetFileInfo is a mock method
func (m *MockFileIO) GetFileInfo(path string) (*FileInfo, error) {
	args := m.Called(path)
	info, _ := args.Get(0).(*FileInfo)
	return info, args.Error(1)
}

// ReadFile is a mock method; onProgress is not matched against
func (m *MockFileIO) ReadFile(ctx context.Context, path string, onProgress func(read int64, total int64)) ([]byte, error) {
	args := m.Called(ctx, path)
	data, _ := args.Get(0).([]byte)
	if onProgress != nil && data != nil {
		onProgress(int64(len(data)), int64(len(data)))
	}
	return data, args.Error(1)
}

// ListFiles is a mock method
func (m *MockFileIO) ListFiles(ctx context.Context, path string) ([]string, error) {
	args := m.Called(ctx, path)
	paths, _ := args.Get(0).([]string)
	return paths, args.Error(1)
}
