package ui

import (
	"math"
	"strings"

	"github.com/jeffwilliams/squarify"

	"github.com/lumipallolabs/diskusage/internal/model"
)

// Block is a laid out category rectangle in character cells
type Block struct {
	Category model.Category
	X, Y     int
	Width    int
	Height   int
}

// treemapItem wraps a category total for the squarify algorithm
type treemapItem struct {
	category model.Category
	size     float64
	children []*treemapItem
}

// Size implements squarify.TreeSizer
func (t *treemapItem) Size() float64 {
	return t.size
}

// NumChildren implements squarify.TreeSizer
func (t *treemapItem) NumChildren() int {
	return len(t.children)
}

// Child implements squarify.TreeSizer
func (t *treemapItem) Child(i int) squarify.TreeSizer {
	return t.children[i]
}

// layoutCategories splits a width x height area between the non-empty
// categories proportionally to their bytes.
func layoutCategories(totals model.CategoryTotals, width, height int) []Block {
	if width < 1 || height < 1 {
		return nil
	}

	root := &treemapItem{}
	for _, c := range model.Categories {
		n := totals.Get(c)
		if n <= 0 {
			continue
		}
		root.children = append(root.children, &treemapItem{category: c, size: float64(n)})
		root.size += float64(n)
	}
	if len(root.children) == 0 {
		return nil
	}

	rect := squarify.Rect{X: 0, Y: 0, W: float64(width), H: float64(height)}
	blocks, metas := squarify.Squarify(root, rect, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})

	var out []Block
	for i, block := range blocks {
		item, ok := block.TreeSizer.(*treemapItem)
		if !ok || i >= len(metas) || metas[i].Depth != 0 {
			continue
		}

		// Round both edges so adjacent blocks share boundaries
		x := int(math.Round(block.X))
		y := int(math.Round(block.Y))
		w := int(math.Round(block.X+block.W)) - x
		h := int(math.Round(block.Y+block.H)) - y
		if x+w > width {
			w = width - x
		}
		if y+h > height {
			h = height - y
		}
		if w < 1 || h < 1 {
			continue
		}

		out = append(out, Block{Category: item.category, X: x, Y: y, Width: w, Height: h})
	}
	return out
}

// renderCategoryMap draws the category treemap with a label in the top-left
// cell of each block that has room for it.
func renderCategoryMap(totals model.CategoryTotals, width, height int) string {
	blocks := layoutCategories(totals, width, height)
	if len(blocks) == 0 {
		return ""
	}

	grid := make([][]rune, height)
	owner := make([][]int, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", width))
		owner[y] = make([]int, width)
		for x := range owner[y] {
			owner[y][x] = -1
		}
	}

	for bi, b := range blocks {
		for y := b.Y; y < b.Y+b.Height; y++ {
			for x := b.X; x < b.X+b.Width; x++ {
				owner[y][x] = bi
			}
		}
		label := []rune(b.Category.String())
		if len(label) > b.Width {
			label = label[:b.Width]
		}
		copy(grid[b.Y][b.X:], label)
	}

	var sb strings.Builder
	for y := 0; y < height; y++ {
		x := 0
		for x < width {
			start := x
			for x < width && owner[y][x] == owner[y][start] {
				x++
			}
			text := string(grid[y][start:x])
			if o := owner[y][start]; o >= 0 {
				text = categoryStyle(blocks[o].Category).Render(text)
			}
			sb.WriteString(text)
		}
		if y < height-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
