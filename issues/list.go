package issues

import "slices"

// List is an immutable snapshot of a workspace's issues, newest first. Every
// change returns a new List and leaves the receiver untouched.
type List struct {
	items []Issue
}

func NewList(items []Issue) List {
	return List{items: slices.Clone(items)}
}

func (l List) Items() []Issue {
	if l.items == nil {
		return []Issue{}
	}
	return slices.Clone(l.items)
}

func (l List) Len() int {
	return len(l.items)
}

// Prepend puts a newly created issue at the head of the list.
func (l List) Prepend(issue Issue) List {
	items := make([]Issue, 0, len(l.items)+1)
	items = append(items, issue)
	items = append(items, l.items...)
	return List{items: items}
}

// Replace swaps the issue with the same ID. Unknown issues leave the list as is.
func (l List) Replace(issue Issue) List {
	idx := slices.IndexFunc(l.items, func(i Issue) bool { return i.ID == issue.ID })
	if idx < 0 {
		return l
	}
	items := slices.Clone(l.items)
	items[idx] = issue
	return List{items: items}
}

// ByStatus groups the issues for a board view, preserving order.
func (l List) ByStatus() map[Status][]Issue {
	groups := make(map[Status][]Issue, len(statuses))
	for _, s := range statuses {
		groups[s] = []Issue{}
	}
	for _, i := range l.items {
		groups[i.Status] = append(groups[i.Status], i)
	}
	return groups
}
