package status

// settings contains reporting options for each metric
type settings struct {
	// Headline makes the metric prominently visible at the top of Summary.
	Headline bool
}

func newSettings() *settings {
	return &settings{}
}
