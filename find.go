// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

package mf2util

// FindFirstEntry returns the first item in doc, in breadth-first order over
// top-level items and their children, that has any of the given types.  It
// returns nil if there is no such item.
func FindFirstEntry(doc *Document, types ...string) *Item {
	var found *Item
	walkItems(doc, func(item *Item) bool {
		if item.HasType(types...) {
			found = item
			return false
		}
		return true
	})
	return found
}

// FindAllEntries returns all items in doc that have any of the given types,
// in breadth-first order.  Children of matching items are searched as well,
// but property values are not: a "p-author h-card" is not found when
// searching for h-card.
func FindAllEntries(doc *Document, types ...string) []*Item {
	var found []*Item
	walkItems(doc, func(item *Item) bool {
		if item.HasType(types...) {
			found = append(found, item)
		}
		return true
	})
	return found
}

// walkItems visits the items of doc breadth-first until fn returns false.
// An item reachable more than once is only visited the first time, so a
// malformed tree with shared or cyclic children cannot loop forever.
func walkItems(doc *Document, fn func(*Item) bool) {
	if doc == nil {
		return
	}
	queue := append([]*Item(nil), doc.Items...)
	seen := make(map[*Item]bool)
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		if item == nil || seen[item] {
			continue
		}
		seen[item] = true
		if !fn(item) {
			return
		}
		queue = append(queue, item.Children...)
	}
}
