package file_cmd

import (
	"fmt"
	"hourbox/files"
	"path/filepath"
	"strings"
)

// resolveFolder accepts a folder id or a slash separated path of folder
// names. "", "/" and "." are the root, returned as nil.
func resolveFolder(m *files.Manager, ref string) (*string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == "/" || ref == "." {
		return nil, nil
	}
	if folder, err := m.Folder(ref); err == nil {
		return &folder.Id, nil
	}

	var current *string
	for _, name := range strings.Split(strings.Trim(ref, "/"), "/") {
		if name == "" {
			continue
		}
		var next *string
		for _, folder := range m.List(current).Folders {
			if folder.Name == name {
				id := folder.Id
				next = &id
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%s: %w", ref, files.ErrFolderNotFound)
		}
		current = next
	}
	return current, nil
}

// resolveFile accepts a file id, or a file name inside folder.
func resolveFile(m *files.Manager, ref string, folder *string) (*files.FileRecord, error) {
	if record, err := m.File(ref); err == nil {
		return record, nil
	}
	var found []files.FileRecord
	for _, record := range m.List(folder).Files {
		if record.Name == ref {
			found = append(found, record)
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%s: %w", ref, files.ErrFileNotFound)
	case 1:
		return &found[0], nil
	default:
		return nil, fmt.Errorf("%d files are named %s, use the id", len(found), ref)
	}
}

// folderPath renders the breadcrumbs of folderId as /a/b.
func folderPath(m *files.Manager, folderId *string) string {
	names := []string{}
	for _, folder := range m.Breadcrumbs(folderId) {
		names = append(names, folder.Name)
	}
	return "/" + strings.Join(names, "/")
}

// localName is the file name a record is saved under in the working
// directory. Stored names may come from old or imported metadata, so any
// directory part is dropped.
func localName(record *files.FileRecord) string {
	name := filepath.Base(filepath.Clean("/" + strings.ReplaceAll(record.Name, "\\", "/")))
	if name == "/" || name == "." || name == ".." {
		return record.Id
	}
	return name
}
