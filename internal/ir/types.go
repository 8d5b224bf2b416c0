// Package ir holds the resource descriptors the generator consumes. They are
// produced upstream and only read here.
package ir

import (
	"sort"
	"strings"
)

// Storage modes.
const (
	StorageWPPost     = "wp-post"
	StorageWPTaxonomy = "wp-taxonomy"
	StorageWPOption   = "wp-option"
	StorageTransient  = "transient"
)

// Identity types.
const (
	IdentityNumber = "number"
	IdentityString = "string"
)

// Project is a decoded descriptor file.
type Project struct {
	Namespace string     `yaml:"namespace" json:"namespace"`
	Origin    string     `yaml:"origin" json:"origin"`
	Resources []Resource `yaml:"resources" json:"resources"`
}

// Resource describes one REST resource.
type Resource struct {
	Name             string                `yaml:"name" json:"name"`
	SchemaKey        string                `yaml:"schemaKey" json:"schemaKey"`
	SchemaProvenance string                `yaml:"schemaProvenance" json:"schemaProvenance"`
	Routes           []Route               `yaml:"routes" json:"routes"`
	CacheKeys        CacheKeys             `yaml:"cacheKeys" json:"cacheKeys"`
	Identity         *Identity             `yaml:"identity,omitempty" json:"identity,omitempty"`
	Storage          *Storage              `yaml:"storage,omitempty" json:"storage,omitempty"`
	QueryParams      map[string]QueryParam `yaml:"queryParams,omitempty" json:"queryParams,omitempty"`
}

// StorageMode returns the storage mode, or "" when the resource has none.
func (r Resource) StorageMode() string {
	if r.Storage == nil {
		return ""
	}
	return r.Storage.Mode
}

// QueryParamNames returns the query parameter names sorted.
func (r Resource) QueryParamNames() []string {
	return sortedKeys(r.QueryParams)
}

// Route is one REST route.
type Route struct {
	Method string `yaml:"method" json:"method"`
	Path   string `yaml:"path" json:"path"`
	Policy string `yaml:"policy,omitempty" json:"policy,omitempty"`
}

// NormalisedMethod returns the upper-cased HTTP method.
func (r Route) NormalisedMethod() string {
	return strings.ToUpper(strings.TrimSpace(r.Method))
}

// CacheKey lists the segments of one cache key.
type CacheKey struct {
	Segments []string `yaml:"segments" json:"segments"`
}

// CacheKeys groups the cache keys of a resource. Write keys are optional.
type CacheKeys struct {
	List   CacheKey  `yaml:"list" json:"list"`
	Get    CacheKey  `yaml:"get" json:"get"`
	Create *CacheKey `yaml:"create,omitempty" json:"create,omitempty"`
	Update *CacheKey `yaml:"update,omitempty" json:"update,omitempty"`
	Remove *CacheKey `yaml:"remove,omitempty" json:"remove,omitempty"`
}

// Identity addresses a single resource instance.
type Identity struct {
	Type  string `yaml:"type" json:"type"`
	Param string `yaml:"param,omitempty" json:"param,omitempty"`
}

// QueryParam describes a collection query parameter.
type QueryParam struct {
	Type        string   `yaml:"type" json:"type"`
	Optional    bool     `yaml:"optional,omitempty" json:"optional,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Enum        []string `yaml:"enum,omitempty" json:"enum,omitempty"`
}

// Storage is the backing store of a resource. Which fields apply depends on
// Mode.
type Storage struct {
	Mode string `yaml:"mode" json:"mode"`

	// wp-post
	PostType   string                        `yaml:"postType,omitempty" json:"postType,omitempty"`
	Statuses   []string                      `yaml:"statuses,omitempty" json:"statuses,omitempty"`
	Supports   []string                      `yaml:"supports,omitempty" json:"supports,omitempty"`
	Meta       map[string]MetaDescriptor     `yaml:"meta,omitempty" json:"meta,omitempty"`
	Taxonomies map[string]TaxonomyDescriptor `yaml:"taxonomies,omitempty" json:"taxonomies,omitempty"`

	// wp-taxonomy
	Taxonomy     string `yaml:"taxonomy,omitempty" json:"taxonomy,omitempty"`
	Hierarchical bool   `yaml:"hierarchical,omitempty" json:"hierarchical,omitempty"`

	// wp-option
	Option string `yaml:"option,omitempty" json:"option,omitempty"`

	// transient
	Key string `yaml:"key,omitempty" json:"key,omitempty"`
}

// HasSupport reports whether feature is listed in Supports.
func (s *Storage) HasSupport(feature string) bool {
	for _, candidate := range s.Supports {
		if candidate == feature {
			return true
		}
	}
	return false
}

// MetaKeys returns the meta keys sorted.
func (s *Storage) MetaKeys() []string {
	return sortedKeys(s.Meta)
}

// TaxonomyKeys returns the taxonomy keys sorted.
func (s *Storage) TaxonomyKeys() []string {
	return sortedKeys(s.Taxonomies)
}

// MetaDescriptor describes one registered post meta key.
type MetaDescriptor struct {
	Type   string `yaml:"type" json:"type"`
	Single *bool  `yaml:"single,omitempty" json:"single,omitempty"`
}

// IsSingle reports whether the key holds one value. Unset means single.
func (m MetaDescriptor) IsSingle() bool {
	return m.Single == nil || *m.Single
}

// TaxonomyDescriptor links a request key to a taxonomy.
type TaxonomyDescriptor struct {
	Taxonomy string `yaml:"taxonomy" json:"taxonomy"`
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
