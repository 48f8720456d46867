package scopes

// Collected pairs a reported declaration with its visibility.
type Collected struct {
	Binding
	Vis Visibility
}

// Collector accumulates lookup results. Max, when positive, stops the
// walk after that many findings; zero collects everything in scope.
type Collector struct {
	Max     int
	Results []Collected
}

func (c *Collector) Found(b Binding, vis Visibility) bool {
	c.Results = append(c.Results, Collected{Binding: b, Vis: vis})
	return c.Max > 0 && len(c.Results) >= c.Max
}
