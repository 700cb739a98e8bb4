package pipeline

// YearControl is a single-slot channel carrying the latest requested render
// year. Writes replace any pending value, so a consumer that falls behind
// only ever sees the most recent request — the slider can move faster than
// the renderer without queueing stale frames.
type YearControl struct {
	ch chan int
}

// NewYearControl creates an empty control.
func NewYearControl() *YearControl {
	return &YearControl{ch: make(chan int, 1)}
}

// Set publishes a requested year, displacing any value not yet consumed.
// Never blocks.
func (c *YearControl) Set(year int) {
	for {
		select {
		case c.ch <- year:
			return
		default:
			select {
			case <-c.ch:
			default:
			}
		}
	}
}

// Changes returns the channel the render loop consumes.
func (c *YearControl) Changes() <-chan int {
	return c.ch
}
