package prettyfast

import "github.com/kiteco/prettyfast/kite-golib/status"

var (
	section = status.NewSection("prettyfast")

	prettifyDuration = section.SampleDuration("Prettify")
	tokenCount       = section.SampleInt64("Tokens")
	inputBytes       = section.SampleByte("Input")
	tokenizeErrors   = section.Counter("Tokenize errors")
)

func init() {
	prettifyDuration.Headline = true
}

// Stats returns the status section prettyfast reports its metrics in.
func Stats() *status.Section {
	return section
}
