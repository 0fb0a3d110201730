package rating

// Controller owns the rating vector for the clip on screen and the
// active-dimension cursor used to route digit keys.
//
// It is not safe for concurrent use; the session controller serialises access.
type Controller struct {
	vector Vector
	active Dimension
}

// NewController returns a controller in its reset state
func NewController() *Controller {
	c := &Controller{}
	c.Reset()
	return c
}

// Reset clears every score and puts the cursor back on valence.
// Called on every clip load.
func (c *Controller) Reset() {
	c.vector = Vector{}
	c.active = Valence
}

// SelectRating records value for dimension. Invalid input leaves state untouched.
func (c *Controller) SelectRating(d Dimension, value int) error {
	if !d.Valid() {
		return ErrUnknownDimension
	}
	if !ValidScore(value) {
		return ErrScoreOutOfRange
	}
	c.vector[d] = value
	return nil
}

// SetActiveDimension moves the cursor to d
func (c *Controller) SetActiveDimension(d Dimension) error {
	if !d.Valid() {
		return ErrUnknownDimension
	}
	c.active = d
	return nil
}

// AdvanceActiveDimension moves the cursor to the first unset dimension other
// than the active one. The cursor stays put when no such dimension exists.
func (c *Controller) AdvanceActiveDimension() {
	for _, d := range Dimensions {
		if _, set := c.vector.Get(d); !set && d != c.active {
			c.active = d
			return
		}
	}
}

// CycleActiveDimension moves the cursor forward, wrapping after dominance
func (c *Controller) CycleActiveDimension() {
	c.active = Dimensions[(int(c.active)+1)%len(Dimensions)]
}

// RateActive records value on the active dimension and auto-advances.
// This is the digit-key path.
func (c *Controller) RateActive(value int) error {
	if err := c.SelectRating(c.active, value); err != nil {
		return err
	}
	c.AdvanceActiveDimension()
	return nil
}

// Active returns the dimension receiving keyboard input
func (c *Controller) Active() Dimension {
	return c.active
}

// Vector returns a copy of the current scores
func (c *Controller) Vector() Vector {
	return c.vector
}

// Ready reports whether the vector may be submitted
func (c *Controller) Ready() bool {
	return c.vector.Complete()
}

// Row is the rendered state of one dimension row
type Row struct {
	Dimension Dimension
	Selected  int // 0 when nothing is selected
	Active    bool
}

// View is a projection of the controller for rendering
type View struct {
	Rows  []Row
	Ready bool
}

// View builds the current projection
func (c *Controller) View() View {
	rows := make([]Row, 0, len(Dimensions))
	for _, d := range Dimensions {
		score, _ := c.vector.Get(d)
		rows = append(rows, Row{
			Dimension: d,
			Selected:  score,
			Active:    d == c.active,
		})
	}
	return View{Rows: rows, Ready: c.Ready()}
}
