package domain

import (
	"fmt"
	"sort"
)

// FolderAppendOrder is the sentinel order assigned when an item is dropped
// into a folder mid-gesture. It sorts after any realistic sibling order; the
// drag-end pass replaces it with a real index.
const FolderAppendOrder = 9999

// indexOf returns the slice index of the site with the given ID, or -1.
func indexOf(sites []Site, id string) int {
	for i := range sites {
		if sites[i].ID == id {
			return i
		}
	}
	return -1
}

// DragToCategory handles a drag-over onto a category header: the dragged item
// becomes a root item of that category. Returns false when the gesture is a
// no-op (already a root item there, or the item is unknown).
func DragToCategory(sites []Site, dragID, category string) bool {
	i := indexOf(sites, dragID)
	if i < 0 {
		return false
	}
	a := &sites[i]
	if a.Category == category && a.IsRoot() {
		return false
	}
	a.Category = category
	a.ParentID = ""
	return true
}

// DragOver applies at most one reconciliation rule for dragged item A hovering
// over item B. The rules are checked in a fixed order and are mutually
// exclusive; applying a single rule per tick prevents oscillation while the
// pointer sits between drop targets.
//
// Every rule that changes ParentID also sets Category to match, so the
// parent/category invariant holds after every call.
func DragOver(sites []Site, dragID, overID string) bool {
	ai := indexOf(sites, dragID)
	bi := indexOf(sites, overID)
	if ai < 0 || bi < 0 || ai == bi {
		return false
	}
	a, b := &sites[ai], &sites[bi]

	// Folders themselves never gain a parent; the only folder move that
	// exists is between categories (handled by DragToCategory and the
	// cross-category rule below).
	switch {
	case b.IsFolder() && !a.IsFolder() && a.ParentID != b.ID:
		// Dropping into a folder appends to its end.
		a.ParentID = b.ID
		a.Category = b.Category
		a.Order = FolderAppendOrder
		return true

	case b.IsRoot() && !b.IsFolder() && !a.IsRoot():
		// Hovering a root item pulls A out of its folder.
		a.ParentID = ""
		a.Category = b.Category
		return true

	case !b.IsRoot() && a.IsRoot() && !a.IsFolder():
		// Hovering a folder child pulls A into that folder.
		a.ParentID = b.ParentID
		a.Category = b.Category
		return true

	case !b.IsRoot() && !a.IsRoot() && a.ParentID != b.ParentID && !a.IsFolder():
		// Both nested, different folders: A follows B.
		a.ParentID = b.ParentID
		a.Category = b.Category
		return true

	case a.Category != b.Category && b.IsRoot() && !b.IsFolder():
		// Cross-category hover over a root item.
		a.Category = b.Category
		a.ParentID = ""
		return true
	}

	return false
}

// PromoteFromFolder handles the "move out of folder" breadcrumb target:
// it clears the item's parent and nothing else.
func PromoteFromFolder(sites []Site, id string) bool {
	i := indexOf(sites, id)
	if i < 0 || sites[i].ParentID == "" {
		return false
	}
	sites[i].ParentID = ""
	return true
}

// MoveItem moves the element at from to position to, shifting the rest.
// Used at drag-end when the gesture finished on another item.
func MoveItem(sites []Site, from, to int) {
	if from < 0 || from >= len(sites) || to < 0 || to >= len(sites) || from == to {
		return
	}
	item := sites[from]
	if from < to {
		copy(sites[from:to], sites[from+1:to+1])
	} else {
		copy(sites[to+1:from+1], sites[to:from])
	}
	sites[to] = item
}

// ReindexScope rewrites Order for every site in the (category, parentID)
// sibling scope to its position in current slice order. Called at drag-end so
// the in-gesture sentinel orders collapse back to dense indexes.
func ReindexScope(sites []Site, category, parentID string) {
	n := 0
	for i := range sites {
		if sites[i].Category == category && sites[i].ParentID == parentID {
			sites[i].Order = n
			n++
		}
	}
}

// ReindexAll rewrites Order for every sibling scope present in the slice.
func ReindexAll(sites []Site) {
	counts := make(map[[2]string]int)
	for i := range sites {
		key := [2]string{sites[i].Category, sites[i].ParentID}
		sites[i].Order = counts[key]
		counts[key]++
	}
}

// SortSiblings orders the slice by (category, parentID, order) without
// changing any field. Useful before reindexing a freshly loaded collection.
func SortSiblings(sites []Site) {
	sort.SliceStable(sites, func(i, j int) bool {
		if sites[i].Category != sites[j].Category {
			return sites[i].Category < sites[j].Category
		}
		if sites[i].ParentID != sites[j].ParentID {
			return sites[i].ParentID < sites[j].ParentID
		}
		return sites[i].Order < sites[j].Order
	})
}

// Validate checks the structural invariant over a full site collection:
// every non-empty ParentID references an existing folder whose category
// equals the child's category, and folders have no parent.
func Validate(sites []Site) error {
	byID := make(map[string]*Site, len(sites))
	for i := range sites {
		if sites[i].ID == "" {
			return fmt.Errorf("site %q has no id", sites[i].Name)
		}
		if _, dup := byID[sites[i].ID]; dup {
			return fmt.Errorf("duplicate site id %q", sites[i].ID)
		}
		byID[sites[i].ID] = &sites[i]
	}

	for i := range sites {
		s := &sites[i]
		if s.IsFolder() && s.ParentID != "" {
			return fmt.Errorf("folder %q has a parent; folders do not nest", s.ID)
		}
		if s.ParentID == "" {
			continue
		}
		parent, ok := byID[s.ParentID]
		if !ok {
			return fmt.Errorf("site %q references missing parent %q", s.ID, s.ParentID)
		}
		if !parent.IsFolder() {
			return fmt.Errorf("site %q has non-folder parent %q", s.ID, s.ParentID)
		}
		if parent.Category != s.Category {
			return fmt.Errorf("site %q category %q does not match parent %q category %q",
				s.ID, s.Category, parent.ID, parent.Category)
		}
	}

	return nil
}

// MaxChildOrder returns the highest Order among direct children of the folder,
// or -1 when the folder is empty.
func MaxChildOrder(sites []Site, folderID string) int {
	maxOrder := -1
	for i := range sites {
		if sites[i].ParentID == folderID && sites[i].Order > maxOrder {
			maxOrder = sites[i].Order
		}
	}
	return maxOrder
}

// RemoveSite deletes the site with the given ID and applies the chosen policy
// to its children: deleteContents removes them too, otherwise they are
// promoted to category roots with their category unchanged.
//
// Returns the remaining collection and the IDs that were removed.
func RemoveSite(sites []Site, id string, deleteContents bool) (remaining []Site, removed []string) {
	i := indexOf(sites, id)
	if i < 0 {
		return sites, nil
	}
	target := sites[i]

	remaining = make([]Site, 0, len(sites))
	removed = append(removed, id)

	for j := range sites {
		s := sites[j]
		if s.ID == id {
			continue
		}
		if target.IsFolder() && s.ParentID == id {
			if deleteContents {
				removed = append(removed, s.ID)
				continue
			}
			s.ParentID = ""
		}
		remaining = append(remaining, s)
	}

	return remaining, removed
}
