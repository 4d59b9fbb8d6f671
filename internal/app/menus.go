package app

import "github.com/ckos/ckos/helpers"

// cursor is one scrolling list position: main menu and settings hold
// independent instances with the same window invariant,
// visibleStart <= selection < visibleStart+maxVisible.
type cursor struct {
	selection    int
	visibleStart int
	maxVisible   int
	count        int
}

func (c *cursor) reset() {
	c.selection = 0
	c.visibleStart = 0
	c.snap()
}

func (c *cursor) up() {
	c.selection = helpers.ClampInt(c.selection-1, 0, c.count-1)
	c.snap()
}

func (c *cursor) down() {
	c.selection = helpers.ClampInt(c.selection+1, 0, c.count-1)
	c.snap()
}

// snap pulls the window to the selection: below the window the start
// snaps to the selection, above it snaps so the selection is last.
func (c *cursor) snap() {
	if c.selection < c.visibleStart {
		c.visibleStart = c.selection
	} else if c.selection >= c.visibleStart+c.maxVisible {
		c.visibleStart = c.selection - c.maxVisible + 1
	}
}
