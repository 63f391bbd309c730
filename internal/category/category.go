// Package category maintains the per-user ordered, de-duplicated category
// list. Renames and removals never rewrite historical expense records; the
// category stored on an expense is a snapshot of the name at time of spend.
package category

import (
	"errors"
	"strings"
)

// Defaults is the list a fresh account starts with.
func Defaults() []string {
	return []string{"Food & Beverage", "Shopping", "Transport", "Bills", "Other"}
}

var (
	ErrLastCategory = errors.New("cannot remove the last category")
	ErrNotFound     = errors.New("category not found")
)

// Add trims and appends a category. Empty names and exact duplicates
// (case-sensitive) are no-ops; the returned bool reports whether the list
// changed. The input slice is never mutated.
func Add(list []string, name string) ([]string, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return list, false
	}
	for _, existing := range list {
		if existing == trimmed {
			return list, false
		}
	}
	out := make([]string, len(list), len(list)+1)
	copy(out, list)
	return append(out, trimmed), true
}

// Rename maps oldName to the trimmed newName, then de-duplicates keeping the
// first occurrence of each entry, so a rename colliding with an existing
// category never leaves duplicates behind.
func Rename(list []string, oldName, newName string) ([]string, error) {
	trimmed := strings.TrimSpace(newName)
	if trimmed == "" {
		return list, nil
	}
	found := false
	renamed := make([]string, len(list))
	for i, existing := range list {
		if existing == oldName {
			renamed[i] = trimmed
			found = true
		} else {
			renamed[i] = existing
		}
	}
	if !found {
		return nil, ErrNotFound
	}
	seen := make(map[string]struct{}, len(renamed))
	out := renamed[:0]
	for _, name := range renamed {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

// Remove drops the single matching entry. Removing the last remaining
// category is rejected so the list never reaches length zero.
func Remove(list []string, name string) ([]string, error) {
	out := make([]string, 0, len(list))
	found := false
	for _, existing := range list {
		if existing == name && !found {
			found = true
			continue
		}
		out = append(out, existing)
	}
	if !found {
		return nil, ErrNotFound
	}
	if len(out) == 0 {
		return nil, ErrLastCategory
	}
	return out, nil
}
