package files

import (
	"context"
	"fmt"
	L "hourbox/logger"
	"hourbox/metrics"
	"slices"
	"strings"
)

// DeleteFile removes the record first and deletes the blob only once the
// removal is durable. A blob that cannot be deleted is left orphaned.
func (m *Manager) DeleteFile(ctx context.Context, fileId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.fileIndex(fileId)
	if i < 0 {
		return fmt.Errorf("could not delete %s: %w", fileId, ErrFileNotFound)
	}
	previous := slices.Clone(m.files)
	m.files = slices.Delete(m.files, i, i+1)
	if err := m.persistFiles(ctx); err != nil {
		m.files = previous
		return err
	}
	delete(m.selection, fileId)
	m.deleteBlobs(ctx, []string{fileId})
	return nil
}

func (m *Manager) CreateFolder(ctx context.Context, name string, parentId *string) (*Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyFolderName
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if parentId != nil {
		if m.folderIndex(*parentId) < 0 {
			return nil, fmt.Errorf("could not create %s: %w", name, ErrFolderNotFound)
		}
		parentId = ptr(*parentId)
	}
	folder := Folder{
		Id:        m.newId(),
		Name:      name,
		ParentId:  parentId,
		CreatedAt: m.now().UTC(),
	}
	m.folders = append(m.folders, folder)
	if err := m.persistFolders(ctx); err != nil {
		m.folders = m.folders[:len(m.folders)-1]
		return nil, err
	}
	return &folder, nil
}

func (m *Manager) RenameFolder(ctx context.Context, folderId string, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyFolderName
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.folderIndex(folderId)
	if i < 0 {
		return fmt.Errorf("could not rename %s: %w", folderId, ErrFolderNotFound)
	}
	previous := m.folders[i].Name
	m.folders[i].Name = name
	if err := m.persistFolders(ctx); err != nil {
		m.folders[i].Name = previous
		return err
	}
	return nil
}

// DeleteFolder removes the folder, every folder below it and every file in
// any of them. The subtree is collected before anything is changed.
func (m *Manager) DeleteFolder(ctx context.Context, folderId string) (*DeleteSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.folderIndex(folderId)
	if i < 0 {
		return nil, fmt.Errorf("could not delete %s: %w", folderId, ErrFolderNotFound)
	}
	root := m.folders[i]
	doomed := m.subtree(folderId)

	var blobIds []string
	keptFiles := make([]FileRecord, 0, len(m.files))
	for _, f := range m.files {
		if f.ParentId != nil && doomed[*f.ParentId] {
			blobIds = append(blobIds, f.Id)
			continue
		}
		keptFiles = append(keptFiles, f)
	}
	keptFolders := make([]Folder, 0, len(m.folders))
	for _, f := range m.folders {
		if !doomed[f.Id] {
			keptFolders = append(keptFolders, f)
		}
	}

	previousFiles, previousFolders := m.files, m.folders
	m.files, m.folders = keptFiles, keptFolders
	if err := m.persistFiles(ctx); err != nil {
		m.files, m.folders = previousFiles, previousFolders
		return nil, err
	}
	if err := m.persistFolders(ctx); err != nil {
		// files are already gone durably; keep the folders so the tree stays navigable
		m.folders = previousFolders
		return nil, err
	}

	if m.currentFolder != nil && doomed[*m.currentFolder] {
		m.currentFolder = root.ParentId
	}
	for id := range m.selection {
		if doomed[id] || slices.Contains(blobIds, id) {
			delete(m.selection, id)
		}
	}
	summary := &DeleteSummary{
		Folders:       len(doomed),
		Files:         len(blobIds),
		RemovedFolder: root,
	}
	summary.BlobFailures = m.deleteBlobs(ctx, blobIds)
	L.Debug(fmt.Sprintf("deleted folder %s with %d folders and %d files", root.Name, summary.Folders, summary.Files))
	return summary, nil
}

// MoveItem reparents a file or folder; targetFolderId nil is the root.
func (m *Manager) MoveItem(ctx context.Context, itemId string, kind ItemKind, targetFolderId *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	target, err := m.resolveTarget(targetFolderId)
	if err != nil {
		return err
	}
	switch kind {
	case ITEM_KIND_FILE:
		i := m.fileIndex(itemId)
		if i < 0 {
			return fmt.Errorf("could not move %s: %w", itemId, ErrFileNotFound)
		}
		previous := m.files[i].ParentId
		m.files[i].ParentId = target
		if err := m.persistFiles(ctx); err != nil {
			m.files[i].ParentId = previous
			return err
		}
	case ITEM_KIND_FOLDER:
		if err := m.checkFolderMove(itemId, target); err != nil {
			return err
		}
		i := m.folderIndex(itemId)
		previous := m.folders[i].ParentId
		m.folders[i].ParentId = target
		if err := m.persistFolders(ctx); err != nil {
			m.folders[i].ParentId = previous
			return err
		}
	default:
		return fmt.Errorf("unknown item kind %q", kind)
	}
	delete(m.selection, itemId)
	return nil
}

func (m *Manager) resolveTarget(targetFolderId *string) (*string, error) {
	if targetFolderId == nil {
		return nil, nil
	}
	if m.folderIndex(*targetFolderId) < 0 {
		return nil, fmt.Errorf("could not move to %s: %w", *targetFolderId, ErrFolderNotFound)
	}
	return ptr(*targetFolderId), nil
}

func (m *Manager) checkFolderMove(folderId string, target *string) error {
	if m.folderIndex(folderId) < 0 {
		return fmt.Errorf("could not move %s: %w", folderId, ErrFolderNotFound)
	}
	if target == nil {
		return nil
	}
	if *target == folderId {
		return ErrSelfMove
	}
	if m.subtree(folderId)[*target] {
		return ErrMoveIntoDescendant
	}
	return nil
}

// subtree returns the ids of folderId and all folders below it.
func (m *Manager) subtree(folderId string) map[string]bool {
	children := map[string][]string{}
	for _, f := range m.folders {
		if f.ParentId != nil {
			children[*f.ParentId] = append(children[*f.ParentId], f.Id)
		}
	}
	ids := map[string]bool{folderId: true}
	queue := []string{folderId}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if !ids[child] {
				ids[child] = true
				queue = append(queue, child)
			}
		}
	}
	return ids
}

// deleteBlobs is best effort and returns the number of failures.
func (m *Manager) deleteBlobs(ctx context.Context, ids []string) int {
	if len(ids) == 0 {
		return 0
	}
	if err := m.blobStoreErr(); err != nil {
		L.Warn(fmt.Sprintf("leaving %d blobs behind: %v", len(ids), err))
		return len(ids)
	}
	failures := 0
	for _, id := range ids {
		if err := m.blobs.Delete(ctx, id); err != nil {
			metrics.RecordPersistFailure(metrics.STORE_BLOB)
			L.Warn(fmt.Sprintf("could not delete blob %s: %v", id, err))
			failures++
		}
	}
	return failures
}
