// Package tree rebuilds the reply hierarchy of a story from its flat,
// creation-ordered comment list.
package tree

import (
	"nardchat/internal/models"
)

type OrphanPolicy int

const (
	// OrphanDrop leaves comments whose parent is missing out of the tree.
	OrphanDrop OrphanPolicy = iota
	// OrphanPromote shows them as roots.
	OrphanPromote
)

type Options struct {
	// MaxDepth caps the number of visible levels, roots being level 1.
	// 0 means unbounded. Replies below the cap are attached to their
	// ancestor on level MaxDepth-1. A cap of 1 is raised to 2.
	MaxDepth int
	Orphans  OrphanPolicy
}

type Result struct {
	Roots []*models.Comment
	// Orphans lists ids whose parent id was not among the input, dropped or
	// promoted according to the policy.
	Orphans []uint
}

// Build runs in O(n) with one auxiliary index. The input is not modified;
// returned nodes are copies with Replies filled.
func Build(comments []models.Comment, opts Options) Result {
	maxDepth := opts.MaxDepth
	if maxDepth == 1 {
		maxDepth = 2
	}

	nodes := make(map[uint]*models.Comment, len(comments))
	order := make([]*models.Comment, 0, len(comments))
	for i := range comments {
		n := comments[i]
		n.Replies = nil
		nodes[n.ID] = &n
		order = append(order, &n)
	}

	b := &builder{
		nodes:  nodes,
		policy: opts.Orphans,
		levels: make(map[uint]int, len(comments)),
	}

	res := Result{Roots: []*models.Comment{}}
	for _, n := range order {
		if n.ParentID == nil {
			res.Roots = append(res.Roots, n)
			continue
		}
		parent, ok := nodes[*n.ParentID]
		if !ok {
			res.Orphans = append(res.Orphans, n.ID)
			if opts.Orphans == OrphanPromote {
				res.Roots = append(res.Roots, n)
			}
			continue
		}
		if maxDepth > 0 {
			parent = b.anchor(parent, maxDepth-1)
		}
		parent.Replies = append(parent.Replies, n)
	}
	return res
}

type builder struct {
	nodes  map[uint]*models.Comment
	policy OrphanPolicy
	levels map[uint]int
}

// level returns the 1-based depth of n, 0 when n hangs off a dropped orphan
// or a parent cycle.
func (b *builder) level(n *models.Comment) int {
	if l, ok := b.levels[n.ID]; ok {
		return l
	}
	b.levels[n.ID] = 0 // cycle guard

	l := 1
	if n.ParentID != nil {
		parent, ok := b.nodes[*n.ParentID]
		switch {
		case !ok && b.policy == OrphanPromote:
			l = 1
		case !ok:
			l = 0
		default:
			if pl := b.level(parent); pl > 0 {
				l = pl + 1
			} else {
				l = 0
			}
		}
	}
	b.levels[n.ID] = l
	return l
}

// anchor walks up from n until the node sits on level limit or above.
func (b *builder) anchor(n *models.Comment, limit int) *models.Comment {
	for b.level(n) > limit && n.ParentID != nil {
		parent, ok := b.nodes[*n.ParentID]
		if !ok {
			break
		}
		n = parent
	}
	return n
}
