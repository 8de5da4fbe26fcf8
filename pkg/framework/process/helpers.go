package process

// ProcessChannels calls fn for every channel that has both an input and an
// output. Unconnected host ports show up as silence or scratch, so fn never
// needs to check for nil.
func (c *Context) ProcessChannels(fn func(ch int, input, output []float32)) {
	for ch := 0; ch < c.GetNumChannels(); ch++ {
		fn(ch, c.Input[ch], c.Output[ch])
	}
}

// CopyInputToOutput copies each input channel to the output channel of the
// same index.
func (c *Context) CopyInputToOutput() {
	c.ProcessChannels(func(_ int, input, output []float32) {
		copy(output, input)
	})
}

// GetNumChannels returns the number of channel pairs: the smaller of the
// input and output channel counts.
func (c *Context) GetNumChannels() int {
	return min(c.NumInputChannels(), c.NumOutputChannels())
}
