package file_io

import (
	"context"
	"fmt"
	L "hourbox/logger"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// FileIO is the slice of the filesystem the uploader needs.
type FileIO interface {
	GetFileInfo(inputFilePath string) (*FileInfo, error)
	ReadFile(ctx context.Context, inputFilePath string, onProgress func(read int64, total int64)) ([]byte, error)
	ListFiles(ctx context.Context, inputPath string) ([]string, error)
}

type osFileIO struct{}

func New() FileIO {
	return osFileIO{}
}

func (osFileIO) GetFileInfo(inputFilePath string) (*FileInfo, error) {
	return GetFileInfo(inputFilePath)
}

func (osFileIO) ReadFile(ctx context.Context, inputFilePath string, onProgress func(read int64, total int64)) ([]byte, error) {
	return ReadFile(ctx, inputFilePath, onProgress)
}

func (osFileIO) ListFiles(ctx context.Context, inputPath string) ([]string, error) {
	return ListFiles(ctx, inputPath)
}

type ProgressReader struct {
	R          io.Reader
	Count      int64
	Total      int64
	OnProgress func(read int64, total int64)
}

func (pr *ProgressReader) Read(p []byte) (n int, err error) {
	n, err = pr.R.Read(p)
	read := atomic.AddInt64(&pr.Count, int64(n))
	if pr.OnProgress != nil {
		pr.OnProgress(read, pr.Total)
	}
	return n, err
}

// ReadFile reads the whole file, reporting progress after every chunk.
func ReadFile(ctx context.Context, inputFilePath string, onProgress func(read int64, total int64)) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	file, err := os.Open(inputFilePath)
	if err != nil {
		return nil, fmt.Errorf("could not open file %s: %w", inputFilePath, err)
	}
	defer file.Close()
	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("could not stat file %s: %w", inputFilePath, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("could not read: %s is a directory", inputFilePath)
	}
	reader := &ProgressReader{R: file, Total: stat.Size(), OnProgress: onProgress}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", inputFilePath, err)
	}
	return data, nil
}

// ListFiles returns inputPath itself for a regular file, or every readable
// regular file below it for a directory. Hidden entries are skipped.
func ListFiles(ctx context.Context, inputPath string) ([]string, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}
	if info.Mode().IsRegular() {
		return []string{inputPath}, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a regular file", inputPath)
	}

	paths := []string{}
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, walkError error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if walkError != nil {
			L.Debug(fmt.Sprintf("ListFiles: skipping %s: %v", path, walkError))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path != inputPath && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		readable, err := IsReadable(path)
		if err != nil || !readable {
			L.Debug(fmt.Sprintf("ListFiles: could not read %s", path))
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func IsReadable(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()
	return true, nil
}

func IsWritable(inputPath string) (bool, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("path does not exist: %s", inputPath)
		}
		return false, fmt.Errorf("failed to stat path: %s", inputPath)
	}

	if info.IsDir() {
		return isDirWritable(inputPath)
	}
	return isFileWritable(inputPath)
}

func isDirWritable(inputDirPath string) (bool, error) {
	tempFilePath := filepath.Join(inputDirPath, ".write-test-"+strconv.Itoa(int(time.Now().UnixNano())))
	tempFile, err := os.Create(tempFilePath)
	if err != nil {
		return false, err
	}
	_ = tempFile.Close()
	_ = os.Remove(tempFilePath)
	return true, nil
}

func isFileWritable(inputFilePath string) (bool, error) {
	inputFile, err := os.OpenFile(inputFilePath, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return false, err
	}
	_ = inputFile.Close()
	return true, nil
}

func Exists(inputFilePath string) (bool, error) {
	info, err := os.Stat(inputFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", inputFilePath)
	}
	return true, nil
}

type FileInfo struct {
	Size       uint64
	ModifiedAt time.Time
}

// return filesize in bytes and last modified timestamp
func GetFileInfo(inputFilePath string) (*FileInfo, error) {
	stat, err := os.Stat(inputFilePath)
	if err != nil {
		return nil, err
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("could not find size: %s is a directory", inputFilePath)
	}
	return &FileInfo{Size: uint64(stat.Size()), ModifiedAt: stat.ModTime()}, nil
}

type WriteMode uint8

const (
	WRITE_APPEND WriteMode = iota
	WRITE_OVERWRITE
)

func WriteToFile(filePath string, data []byte, mode WriteMode) (int, error) {
	var flags int
	switch mode {
	case WRITE_APPEND:
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	case WRITE_OVERWRITE:
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	parent := filepath.Dir(filePath)
	err := os.MkdirAll(parent, os.ModePerm)
	if err != nil {
		return 0, err
	}
	file, err := os.OpenFile(filePath, flags, 0644)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return file.Write(data)
}

// GetCacheDir returns (and creates) a directory under the user cache dir.
func GetCacheDir(name string) (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(filepath.Join(cacheDir, "hourbox", name))
	if err != nil {
		return "", err
	}
	err = os.MkdirAll(absPath, os.ModePerm)
	if err != nil {
		return "", err
	}
	return absPath, nil
}
