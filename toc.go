package parchment

// TOCEntry is one element of a flat, ordered heading or outline list used to
// build a TOC tree. Level follows heading semantics: 1 is the outermost.
type TOCEntry struct {
	Level int
	ID    string
	Title string
	Href  string
}

// BuildTOCTree converts a flat ordered list of leveled entries into a TOCItem
// tree using a level stack: for each entry, frames with a level >= the
// entry's level are popped, then the entry becomes a new root (empty stack)
// or a child of the new top. Order values are assigned depth-first starting
// at zero, so the tree always contains exactly len(entries) nodes and every
// child's order is greater than its parent's.
//
// This is the single tree builder shared by the flow-document, plain-text
// and paginated-document-outline paths.
func BuildTOCTree(entries []TOCEntry) []*TOCItem {
	type frame struct {
		level int
		item  *TOCItem
	}

	var roots []*TOCItem
	var stack []frame

	for order, e := range entries {
		item := &TOCItem{
			ID:    e.ID,
			Title: e.Title,
			Href:  e.Href,
			Order: order,
		}

		for len(stack) > 0 && stack[len(stack)-1].level >= e.Level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, item)
		} else {
			top := stack[len(stack)-1].item
			top.Children = append(top.Children, item)
		}

		stack = append(stack, frame{level: e.Level, item: item})
	}

	return roots
}

// CountTOC returns the total number of nodes in a TOC tree.
func CountTOC(items []*TOCItem) int {
	n := 0
	for _, item := range items {
		n += 1 + CountTOC(item.Children)
	}
	return n
}

// WalkTOC visits every node of a TOC tree depth-first in document order.
func WalkTOC(items []*TOCItem, fn func(*TOCItem)) {
	for _, item := range items {
		fn(item)
		WalkTOC(item.Children, fn)
	}
}
