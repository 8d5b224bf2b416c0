// Package mutation renders the write side of post-backed resources: the
// mutation macros shared by create, update and delete handlers, the private
// helpers those macros call, and the three route bodies.
package mutation

import "fmt"

// MetadataKeys names the tags written into "// @wp-kernel <key> <value>"
// provenance comments.
type MetadataKeys struct {
	ChannelTag       string
	StatusValidation string
	SyncMeta         string
	SyncTaxonomies   string
	CachePriming     string
	CacheSegment     string
}

// Kinds names the three mutation kinds as they appear in route tags.
type Kinds struct {
	Create string
	Update string
	Delete string
}

// HelperNames holds the helper method name templates. Each %s is replaced
// by the resource's PascalCase name.
type HelperNames struct {
	SyncMeta        string
	SyncTaxonomies  string
	PrepareResponse string
}

// Contract ties the macros, the helper methods they call, and the route
// docblock tags together.
type Contract struct {
	Kinds        Kinds
	Helpers      HelperNames
	MetadataKeys MetadataKeys
}

// WPPostContract is the contract for wp-post storage.
var WPPostContract = Contract{
	Kinds: Kinds{
		Create: "create",
		Update: "update",
		Delete: "delete",
	},
	Helpers: HelperNames{
		SyncMeta:        "sync%sMeta",
		SyncTaxonomies:  "sync%sTaxonomies",
		PrepareResponse: "prepare%sResponse",
	},
	MetadataKeys: MetadataKeys{
		ChannelTag:       "resource.wpPost.mutation",
		StatusValidation: "mutation:status",
		SyncMeta:         "mutation:sync-meta",
		SyncTaxonomies:   "mutation:sync-taxonomies",
		CachePriming:     "mutation:cache-priming",
		CacheSegment:     "cache:segment",
	},
}

// SyncMetaMethod returns sync<Name>Meta for the default templates.
func (c Contract) SyncMetaMethod(pascal string) string {
	return fmt.Sprintf(c.Helpers.SyncMeta, pascal)
}

func (c Contract) SyncTaxonomiesMethod(pascal string) string {
	return fmt.Sprintf(c.Helpers.SyncTaxonomies, pascal)
}

func (c Contract) PrepareResponseMethod(pascal string) string {
	return fmt.Sprintf(c.Helpers.PrepareResponse, pascal)
}

// Route returns the route compiler for a mutation kind, or nil when kind is
// not one of the contract's kinds.
func (c Contract) Route(kind string) func(RouteOptions) bool {
	if kind == "" {
		return nil
	}
	switch kind {
	case c.Kinds.Create:
		return CreateRoute
	case c.Kinds.Update:
		return UpdateRoute
	case c.Kinds.Delete:
		return DeleteRoute
	}
	return nil
}

// Helper method names, keyed by the resource's PascalCase name.

func NormaliseStatusMethod(pascal string) string { return "normalise" + pascal + "Status" }
func ResolvePostMethod(pascal string) string { return "resolve" + pascal + "Post" }
func PostTypeMethod(pascal string) string { return "get" + pascal + "PostType" }
func StatusesMethod(pascal string) string { return "get" + pascal + "Statuses" }
func DefaultStatusMethod(pascal string) string { return "get" + pascal + "DefaultStatus" }
