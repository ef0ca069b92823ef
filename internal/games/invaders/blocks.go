package invaders

import (
	"github.com/vovakirdan/tui-invaders/internal/assets"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// carveWidth and carveDepth bound the cells an enemy destroys when it
// pushes into a shield: the impact cell plus three more in each direction.
const (
	carveWidth = 4
	carveDepth = 4
)

// Block cells are one terminal cell each.
const (
	cellW = 1.0
	cellH = 1.0
)

// Template marks which cells of a cluster exist before any hits.
type Template struct {
	Rows, Cols int
	present    []bool // row-major
}

// BuildTemplate produces a rows x cols shield template. The centered band of
// columns [floor(cols/4), ceil(cols*3/4)) is cut out of every row
// r >= rows-level-1, so the arch grows with the level.
func BuildTemplate(rows, cols, level int) Template {
	t := Template{Rows: rows, Cols: cols, present: make([]bool, rows*cols)}
	lo := cols / 4
	hi := (cols*3 + 3) / 4
	archFrom := rows - level - 1

	for r := range rows {
		for c := range cols {
			cut := c >= lo && c < hi && r >= archFrom
			t.present[r*cols+c] = !cut
		}
	}
	return t
}

// Present reports whether the template places a cell at (row, col).
func (t Template) Present(row, col int) bool {
	if row < 0 || row >= t.Rows || col < 0 || col >= t.Cols {
		return false
	}
	return t.present[row*t.Cols+col]
}

// Cell is one shield unit. LocalX/LocalY are template coordinates and never
// change; Occupied and Sprite clear when the cell is destroyed.
type Cell struct {
	LocalX, LocalY int
	Occupied       bool
	Sprite         assets.Handle
}

// Cluster is one shield: a grid of cells offset by its origin, which is the
// center of cell (0, 0). Rows are never compacted.
type Cluster struct {
	OriginX, OriginY float64
	Cells            [][]Cell
}

// CellPos returns the world center of a cell.
func (c *Cluster) CellPos(row, col int) (x, y float64) {
	return c.OriginX + float64(col)*cellW, c.OriginY + float64(row)*cellH
}

// Left returns the x of the cluster's left edge.
func (c *Cluster) Left() float64 {
	return c.OriginX - cellW/2
}

// Right returns the x of the cluster's right edge.
func (c *Cluster) Right() float64 {
	if len(c.Cells) == 0 {
		return c.OriginX + cellW/2
	}
	return c.OriginX + float64(len(c.Cells[0])-1)*cellW + cellW/2
}

// Bounds returns the box covering every cell position of the cluster,
// destroyed or not.
func (c *Cluster) Bounds() core.Box {
	rows := float64(len(c.Cells))
	top := c.OriginY - cellH/2
	return core.Box{
		CX:    (c.Left() + c.Right()) / 2,
		CY:    top + rows*cellH/2,
		HalfW: (c.Right() - c.Left()) / 2,
		HalfH: rows * cellH / 2,
	}
}

// rowAt returns the first row whose span covers y.
func (c *Cluster) rowAt(y float64) (int, bool) {
	for r := range c.Cells {
		_, rowY := c.CellPos(r, 0)
		if core.Within(y, rowY, cellH/2) {
			return r, true
		}
	}
	return 0, false
}

// colAt returns the first column whose span covers x.
func (c *Cluster) colAt(x float64) (int, bool) {
	if len(c.Cells) == 0 {
		return 0, false
	}
	for col := range c.Cells[0] {
		colX, _ := c.CellPos(0, col)
		if core.Within(x, colX, cellW/2) {
			return col, true
		}
	}
	return 0, false
}

// FieldLayout positions a BlockField on screen.
type FieldLayout struct {
	Count   int     // Number of clusters
	Rows    int     // Rows for a full reset
	Cols    int     // Columns per cluster
	ScreenW int     // Clusters are spread evenly across this width
	TopY    float64 // y of the top row; the field shrinks from the bottom
}

// BlockField is the set of shield clusters guarding the player.
type BlockField struct {
	layout   FieldLayout
	rows     int
	level    int
	sprite   assets.Handle
	template Template
	clusters []Cluster

	// destroyed collects cells removed since the last drain, for Changes.
	destroyed []cellRef
}

type cellRef struct {
	cluster, row, col int
}

// NewBlockField creates a field at level 1 with the layout's full row count.
func NewBlockField(layout FieldLayout, sprite assets.Handle) *BlockField {
	f := &BlockField{layout: layout, sprite: sprite}
	f.Rebuild(1, layout.Rows)
	return f
}

// Instantiate stamps the current template with its top-left cell centered at
// (originX, originY). Cells cut by the template are not occupied.
func (f *BlockField) Instantiate(originX, originY float64) Cluster {
	cl := Cluster{OriginX: originX, OriginY: originY, Cells: make([][]Cell, f.template.Rows)}
	for r := range f.template.Rows {
		cl.Cells[r] = make([]Cell, f.template.Cols)
		for c := range f.template.Cols {
			cell := Cell{LocalX: c, LocalY: r}
			if f.template.Present(r, c) {
				cell.Occupied = true
				cell.Sprite = f.sprite
			}
			cl.Cells[r][c] = cell
		}
	}
	return cl
}

// Rebuild regenerates the template and every cluster, discarding hits.
// rows > 0 sets the row count explicitly; otherwise the field loses a row
// when level > 1, never going below one row.
func (f *BlockField) Rebuild(level, rows int) {
	switch {
	case rows > 0:
		f.rows = rows
	case level > 1:
		f.rows = max(1, f.rows-1)
	}
	f.level = level
	f.template = BuildTemplate(f.rows, f.layout.Cols, level)
	f.destroyed = f.destroyed[:0]

	f.clusters = make([]Cluster, 0, f.layout.Count)
	for _, x := range f.Origins() {
		f.clusters = append(f.clusters, f.Instantiate(x, f.layout.TopY))
	}
}

// Origins returns the x of each cluster's first column. Clusters are centered
// at i*W/(count+1).
func (f *BlockField) Origins() []float64 {
	origins := make([]float64, f.layout.Count)
	width := float64(f.layout.Cols-1) * cellW
	for i := range f.layout.Count {
		center := float64(i+1) * float64(f.layout.ScreenW) / float64(f.layout.Count+1)
		origins[i] = float64(int(center - width/2))
	}
	return origins
}

// Rows returns the current row count.
func (f *BlockField) Rows() int {
	return f.rows
}

// Level returns the level the field was last built for.
func (f *BlockField) Level() int {
	return f.level
}

// Template returns the current template.
func (f *BlockField) Template() Template {
	return f.template
}

// Clusters exposes the clusters for rendering and inspection.
func (f *BlockField) Clusters() []Cluster {
	return f.clusters
}

// ClusterAt returns the cluster whose horizontal extent covers x.
func (f *BlockField) ClusterAt(x float64) (int, bool) {
	for i := range f.clusters {
		cl := &f.clusters[i]
		if x >= cl.Left() && x <= cl.Right() {
			return i, true
		}
	}
	return 0, false
}

// Occupied counts live cells across every cluster.
func (f *BlockField) Occupied() int {
	n := 0
	for _, cl := range f.clusters {
		for _, row := range cl.Cells {
			for _, cell := range row {
				if cell.Occupied {
					n++
				}
			}
		}
	}
	return n
}

// HitCell destroys the first live cell of the cluster covering (x, y).
// Rows are matched by y within half a cell height, then columns by x within
// half a cell width; cells already destroyed are skipped.
func (f *BlockField) HitCell(cluster int, x, y float64) bool {
	if cluster < 0 || cluster >= len(f.clusters) {
		return false
	}
	cl := &f.clusters[cluster]
	for r := range cl.Cells {
		_, rowY := cl.CellPos(r, 0)
		if !core.Within(y, rowY, cellH/2) {
			continue
		}
		for c := range cl.Cells[r] {
			colX, _ := cl.CellPos(r, c)
			if !core.Within(x, colX, cellW/2) {
				continue
			}
			if f.destroy(cluster, r, c) {
				return true
			}
		}
	}
	return false
}

// Hit locates the cluster under (x, y) and destroys one cell there.
func (f *BlockField) Hit(x, y float64) bool {
	i, ok := f.ClusterAt(x)
	if !ok {
		return false
	}
	return f.HitCell(i, x, y)
}

// HitByEnemy carves the shield where an enemy pushes into it: the impact
// column and up to three more in the direction of travel, each from the
// impact row up to three rows above. Scans stop at the grid edges.
// Returns the number of cells destroyed.
func (f *BlockField) HitByEnemy(cluster int, x, y float64, movingRight bool) int {
	if cluster < 0 || cluster >= len(f.clusters) {
		return 0
	}
	cl := &f.clusters[cluster]
	row, ok := cl.rowAt(y)
	if !ok {
		return 0
	}
	col, ok := cl.colAt(x)
	if !ok {
		return 0
	}

	dir := -1
	if movingRight {
		dir = 1
	}

	destroyed := 0
	for dc := range carveWidth {
		c := col + dc*dir
		if c < 0 || c >= len(cl.Cells[row]) {
			break
		}
		for dr := range carveDepth {
			r := row - dr
			if r < 0 {
				break
			}
			if f.destroy(cluster, r, c) {
				destroyed++
			}
		}
	}
	return destroyed
}

func (f *BlockField) destroy(cluster, row, col int) bool {
	cell := &f.clusters[cluster].Cells[row][col]
	if !cell.Occupied {
		return false
	}
	cell.Occupied = false
	cell.Sprite = 0
	f.destroyed = append(f.destroyed, cellRef{cluster: cluster, row: row, col: col})
	return true
}

// drainDestroyed returns and forgets the cells destroyed since the last call.
func (f *BlockField) drainDestroyed() []cellRef {
	out := f.destroyed
	f.destroyed = nil
	return out
}

// cellID is a stable identifier for a cell within the current build.
func (f *BlockField) cellID(ref cellRef) int {
	return (ref.cluster*f.rows+ref.row)*f.layout.Cols + ref.col
}
