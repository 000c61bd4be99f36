package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `memeverse serves the Outrun Memeverse launch catalog as filtered, sorted, paginated views.

Core concepts:
- Project: a launch with one stage (genesis, refund, locked, unlocked), a chain and market numbers.
- View: one browsing session. It owns a filter state (chain, stage, search, mode, listed, sort, page) and survives restarts.
- Page size: 10 projects, or 15 once set_viewport reports a width of 1320px or more.

Typical flow:
1) get_catalog_view to see page 1 with the default filters (genesis, normal mode, newest first).
2) update_filters to narrow the list. Any filter change returns to page 1 unless current_page is passed.
3) list_sort_options before choosing sort_option; each stage offers its own keys.
4) set_page to move through results. Out of range pages are ignored (accepted=false).
5) initialize_from_url to restore a shared link in one step.

Transport notes:
- HTTP: the Mcp-Session-Id header selects the view.
- Stdio: pass _meta.session_id, or session_id on each tool call. Without either, a shared "default" view is used.

Docs:
- memeverse://docs/filters
- memeverse://docs/sorting
- memeverse://docs/url-params
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "memeverse://docs/filters",
		Name:        "docs_filters",
		Title:       "Catalog filters",
		Description: "How filters are applied and when the page resets.",
		Content: `# Filters

Filters run in a fixed order and keep the stored order of projects:

1. **stage**: exactly one of genesis, refund, locked, unlocked. An unknown stage matches nothing.
2. **mode**: genesis only. normal or flash.
3. **listed_only**: genesis only. Keeps projects already listed on OutSwap.
4. **chain**: case-insensitive match. ` + "`all`" + ` disables the filter.
5. **search**: case-insensitive substring of name, symbol or description. Empty is a no-op.

Changing any of chain, stage, search, mode, listed_only, sort_option or sort_direction
moves the view back to page 1. Pass current_page in the same call to keep a page.
`,
	},
	{
		URI:         "memeverse://docs/sorting",
		Name:        "docs_sorting",
		Title:       "Sort options",
		Description: "Sort keys offered per stage and how missing values compare.",
		Content: `# Sorting

| Stage | Keys |
|---|---|
| genesis (normal) | createdAt, genesisEndTime, raisedAmount, population, progress |
| genesis (flash) | createdAt, genesisEndTime, raisedAmount, progress |
| refund | createdAt, raisedAmount, population |
| locked | createdAt, unlockTime, marketCap, volume, stakingAPY, treasuryValue, population |
| unlocked | createdAt, marketCap, volume, stakingAPY, treasuryValue, population |

- ` + "`volume`" + ` sorts by market cap.
- Projects without vault data sort as stakingAPY 0. Same for treasuryValue without DAO data.
- A key the stage does not offer falls back to createdAt.
- Sorting is stable; equal values keep their stored order.
`,
	},
	{
		URI:         "memeverse://docs/url-params",
		Name:        "docs_url_params",
		Title:       "URL parameters",
		Description: "Query parameters accepted by initialize_from_url and GET /catalog.",
		Content: `# URL parameters

` + "`chain, stage, mode, sort, direction, search, page, listed`" + `

Example: ` + "`?chain=base&stage=locked&sort=stakingAPY&direction=asc&page=2`" + `

Missing or invalid values take their defaults (chain=all, stage=genesis, mode=normal,
sort=createdAt, direction=desc, page=1). Every view reports its own query string in
the ` + "`query`" + ` field so it can be shared.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
