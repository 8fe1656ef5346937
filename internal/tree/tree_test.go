package tree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nardchat/internal/models"
)

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func ptr(v uint) *uint { return &v }

func comment(id uint, parent *uint, minute int) models.Comment {
	return models.Comment{
		ID:        id,
		StoryID:   7,
		ParentID:  parent,
		Content:   "c",
		CreatedAt: t0.Add(time.Duration(minute) * time.Minute),
	}
}

func ids(cs []*models.Comment) []uint {
	out := make([]uint, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func sample() []models.Comment {
	return []models.Comment{
		comment(1, nil, 0),
		comment(2, ptr(1), 1),
		comment(3, nil, 2),
		comment(4, ptr(2), 3),
	}
}

func TestBuild_Unbounded(t *testing.T) {
	res := Build(sample(), Options{})

	require.Equal(t, []uint{1, 3}, ids(res.Roots))
	assert.Equal(t, []uint{2}, ids(res.Roots[0].Replies))
	assert.Equal(t, []uint{4}, ids(res.Roots[0].Replies[0].Replies))
	assert.Empty(t, res.Roots[1].Replies)
	assert.Empty(t, res.Orphans)
}

func TestBuild_TwoLevels(t *testing.T) {
	res := Build(sample(), Options{MaxDepth: 2})

	require.Equal(t, []uint{1, 3}, ids(res.Roots))
	assert.Equal(t, []uint{2, 4}, ids(res.Roots[0].Replies))
	assert.Empty(t, res.Roots[0].Replies[0].Replies)
}

func TestBuild_DepthOneActsAsTwo(t *testing.T) {
	a := Build(sample(), Options{MaxDepth: 1})
	b := Build(sample(), Options{MaxDepth: 2})

	assert.Equal(t, ids(b.Roots), ids(a.Roots))
	assert.Equal(t, ids(b.Roots[0].Replies), ids(a.Roots[0].Replies))
}

func TestBuild_ThreeLevelsCollapsesDeeper(t *testing.T) {
	in := []models.Comment{
		comment(1, nil, 0),
		comment(2, ptr(1), 1),
		comment(3, ptr(2), 2),
		comment(4, ptr(3), 3),
		comment(5, ptr(2), 4),
		comment(6, ptr(4), 5),
	}
	res := Build(in, Options{MaxDepth: 3})

	require.Equal(t, []uint{1}, ids(res.Roots))
	two := res.Roots[0].Replies[0]
	assert.Equal(t, uint(2), two.ID)
	assert.Equal(t, []uint{3, 4, 5, 6}, ids(two.Replies))
}

func TestBuild_OrphanDropped(t *testing.T) {
	in := []models.Comment{
		comment(1, nil, 0),
		comment(5, ptr(99), 1),
		comment(6, ptr(5), 2),
	}
	res := Build(in, Options{})

	assert.Equal(t, []uint{1}, ids(res.Roots))
	assert.Empty(t, res.Roots[0].Replies)
	assert.Equal(t, []uint{5}, res.Orphans)
}

func TestBuild_OrphanPromoted(t *testing.T) {
	in := []models.Comment{
		comment(1, nil, 0),
		comment(5, ptr(99), 1),
		comment(6, ptr(5), 2),
		comment(7, nil, 3),
	}
	res := Build(in, Options{Orphans: OrphanPromote, MaxDepth: 2})

	require.Equal(t, []uint{1, 5, 7}, ids(res.Roots))
	assert.Equal(t, []uint{6}, ids(res.Roots[1].Replies))
	assert.Equal(t, []uint{5}, res.Orphans)
}

func TestBuild_Empty(t *testing.T) {
	res := Build(nil, Options{})
	assert.NotNil(t, res.Roots)
	assert.Empty(t, res.Roots)
	assert.Empty(t, res.Orphans)
}

func TestBuild_DoesNotTouchInput(t *testing.T) {
	in := sample()
	Build(in, Options{})
	for _, c := range in {
		assert.Nil(t, c.Replies)
	}
}
