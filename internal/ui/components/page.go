package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/adminshell/internal/ui/resources"
)

// DatastarScript is the datastar client bundle the shell is written against.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// Page renders a full HTML document. In dev mode the page also subscribes
// to the hot reload stream.
func Page(title, appName string, isDev bool, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newWriter(w)
		hw.raw("<!doctype html>\n<html lang=\"en\">\n<head>\n")
		hw.raw(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw("\n<title>")
		hw.text(title)
		if appName != "" {
			hw.raw(" - ")
			hw.text(appName)
		}
		hw.raw("</title>\n")
		hw.raw(`<link rel="stylesheet" href="` + resources.StaticPath("shell.css") + `">`)
		hw.raw("\n")
		hw.raw(`<script type="module" src="` + DatastarScript + `"></script>`)
		hw.raw("\n</head>\n<body")
		if isDev {
			hw.raw(` data-init="@get('/reload', {retryMaxCount: 1000, retryInterval: 20, retryMaxWaitMs: 200})"`)
		}
		hw.raw(">\n")
		hw.render(ctx, body)
		hw.raw("\n</body>\n</html>\n")
		return hw.err
	})
}
