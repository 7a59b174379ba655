package input

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Page     bool
	Results  int
	Busy     bool
	Index    int
	Elements int // selectable items in the current view
}

func (c ModelContext) ShowingPage() bool { return c.Page }
func (c ModelContext) HasResults() bool  { return c.Results > 0 }
func (c ModelContext) Loading() bool     { return c.Busy }
func (c ModelContext) CurrentIndex() int { return c.Index }
func (c ModelContext) TotalItems() int   { return c.Elements }
