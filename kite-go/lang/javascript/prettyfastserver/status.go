package prettyfastserver

import "github.com/kiteco/prettyfast/kite-golib/status"

var (
	section = status.NewSection("prettyfastserver")

	cacheHits    = section.Ratio("Cache hits")
	statusCodes  = section.Breakdown("Prettify status codes")
	requestBytes = section.SampleByte("Request size")
)

func init() {
	statusCodes.Headline = true
}
