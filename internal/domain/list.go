package domain

// Identifiable is implemented by every entity stored in an ordered list.
type Identifiable interface {
	GetID() int
}

// NextID returns one more than the highest ID in items, or 1 for an empty list.
// IDs freed by deletion are never handed out again while a higher ID remains.
func NextID[T Identifiable](items []T) int {
	maxID := 0
	for _, item := range items {
		if id := item.GetID(); id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// Prepend returns a new list with item in front of items.
func Prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

// RemoveByID returns a new list without the entries whose ID equals id.
func RemoveByID[T Identifiable](items []T, id int) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.GetID() != id {
			out = append(out, item)
		}
	}
	return out
}

// ContainsID reports whether any entry in items has the given id.
func ContainsID[T Identifiable](items []T, id int) bool {
	for _, item := range items {
		if item.GetID() == id {
			return true
		}
	}
	return false
}

// ToggleByID removes item when an entry with its ID is present and prepends
// it otherwise. The returned bool is true when the item ended up in the list.
func ToggleByID[T Identifiable](items []T, item T) ([]T, bool) {
	if ContainsID(items, item.GetID()) {
		return RemoveByID(items, item.GetID()), false
	}
	return Prepend(items, item), true
}
