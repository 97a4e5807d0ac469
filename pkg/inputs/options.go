package inputs

// optionCursor tracks a selection over a fixed option list. It backs the
// select list and radio group widgets; rendering differs, movement and
// fallback rules do not.
type optionCursor struct {
	options []string
	index   int
}

func newOptionCursor(options []string) optionCursor {
	return optionCursor{options: options}
}

func (c *optionCursor) empty() bool { return len(c.options) == 0 }

// current returns the option under the cursor, or "" without options.
func (c *optionCursor) current() string {
	if c.empty() {
		return ""
	}
	return c.options[c.index]
}

func (c *optionCursor) move(delta int) {
	if c.empty() {
		return
	}
	next := c.index + delta
	if next < 0 {
		next = 0
	}
	if next >= len(c.options) {
		next = len(c.options) - 1
	}
	c.index = next
}

// jumpTo places the cursor on value. Unknown values fall back to the first
// option, which keeps the widget inside its own enum.
func (c *optionCursor) jumpTo(value string) {
	if c.empty() {
		return
	}
	for i, o := range c.options {
		if o == value {
			c.index = i
			return
		}
	}
	c.index = 0
}
