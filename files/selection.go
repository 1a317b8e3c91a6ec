package files

import (
	"context"
	"fmt"
	"slices"
)

// ToggleSelection flips the selection of an item in the current folder and
// reports whether it is selected afterwards.
func (m *Manager) ToggleSelection(itemId string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.selection[itemId]; ok {
		delete(m.selection, itemId)
		return false, nil
	}
	kind, ok := m.kindInCurrentFolder(itemId)
	if !ok {
		return false, fmt.Errorf("could not select %s: %w", itemId, ErrNotInView)
	}
	m.selection[itemId] = kind
	return true, nil
}

// SelectAll selects every item of the current folder, or clears the selection.
func (m *Manager) SelectAll(selectAll bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.selection)
	if !selectAll {
		return 0
	}
	listing := m.list(m.currentFolder)
	for _, f := range listing.Folders {
		m.selection[f.Id] = ITEM_KIND_FOLDER
	}
	for _, f := range listing.Files {
		m.selection[f.Id] = ITEM_KIND_FILE
	}
	return len(m.selection)
}

func (m *Manager) ClearSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.selection)
}

func (m *Manager) IsSelected(itemId string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.selection[itemId]
	return ok
}

// Selected returns the selected ids in sorted order.
func (m *Manager) Selected() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.selection))
	for id := range m.selection {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// MoveSelected moves every selected item to targetFolderId, collects
// per-item failures, persists once and clears the selection.
func (m *Manager) MoveSelected(ctx context.Context, targetFolderId *string) (*MoveResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	target, err := m.resolveTarget(targetFolderId)
	if err != nil {
		return nil, err
	}
	previousFiles, previousFolders := slices.Clone(m.files), slices.Clone(m.folders)
	result := &MoveResult{Failed: []MoveFailure{}}
	movedFiles, movedFolders := false, false

	ids := make([]string, 0, len(m.selection))
	for id := range m.selection {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		switch m.selection[id] {
		case ITEM_KIND_FILE:
			i := m.fileIndex(id)
			if i < 0 {
				result.Failed = append(result.Failed, MoveFailure{Id: id, Err: ErrFileNotFound})
				continue
			}
			m.files[i].ParentId = target
			movedFiles = true
		case ITEM_KIND_FOLDER:
			if err := m.checkFolderMove(id, target); err != nil {
				result.Failed = append(result.Failed, MoveFailure{Id: id, Err: err})
				continue
			}
			m.folders[m.folderIndex(id)].ParentId = target
			movedFolders = true
		}
		result.Moved++
	}

	if movedFiles {
		if err := m.persistFiles(ctx); err != nil {
			m.files, m.folders = previousFiles, previousFolders
			return nil, err
		}
	}
	if movedFolders {
		if err := m.persistFolders(ctx); err != nil {
			m.folders = previousFolders
			return nil, err
		}
	}
	clear(m.selection)
	return result, nil
}

func (m *Manager) kindInCurrentFolder(itemId string) (ItemKind, bool) {
	if i := m.fileIndex(itemId); i >= 0 && sameParent(m.files[i].ParentId, m.currentFolder) {
		return ITEM_KIND_FILE, true
	}
	if i := m.folderIndex(itemId); i >= 0 && sameParent(m.folders[i].ParentId, m.currentFolder) {
		return ITEM_KIND_FOLDER, true
	}
	return "", false
}
