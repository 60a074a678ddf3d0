package inlinescript

import "github.com/kiteco/prettyfast/kite-golib/status"

var (
	section = status.NewSection("inlinescript")

	pages        = section.Counter("Documents")
	scripts      = section.Counter("Scripts")
	scriptErrors = section.Counter("Script errors")
)
