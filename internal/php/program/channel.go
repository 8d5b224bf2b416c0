// Package program accumulates generated PHP files for one generation run and
// turns each into a program: source text plus a serialisable syntax tree.
package program

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Context is the state of one generation run. Builders that write into the
// same file share it through the run's channel.
type Context struct {
	RunID uuid.UUID

	once    sync.Once
	channel *Channel
}

// NewContext creates a run context with a fresh run id.
func NewContext() *Context {
	return &Context{RunID: uuid.New()}
}

// Channel returns the run's channel, creating it on first use.
func (c *Context) Channel() *Channel {
	c.once.Do(func() {
		c.channel = newChannel()
	})
	return c.channel
}

// Channel maps logical output files to their accumulation entries.
type Channel struct {
	order   []string
	entries map[string]*Entry
}

func newChannel() *Channel {
	return &Channel{entries: map[string]*Entry{}}
}

// OpenOptions identifies a file entry.
type OpenOptions struct {
	Key       string
	FilePath  string
	Namespace string
	Metadata  Metadata
}

// Open returns the entry for opts.Key, creating it when absent. An existing
// entry is returned as is; the other options only apply on creation.
func (c *Channel) Open(opts OpenOptions) *Entry {
	if entry, ok := c.entries[opts.Key]; ok {
		return entry
	}

	entry := &Entry{
		Key:            opts.Key,
		FilePath:       opts.FilePath,
		Metadata:       opts.Metadata,
		namespaceParts: splitNamespace(opts.Namespace),
		uses:           map[string]Use{},
	}
	c.entries[opts.Key] = entry
	c.order = append(c.order, opts.Key)
	return entry
}

// Get returns the entry for key.
func (c *Channel) Get(key string) (*Entry, bool) {
	entry, ok := c.entries[key]
	return entry, ok
}

// Entries returns every entry in creation order.
func (c *Channel) Entries() []*Entry {
	entries := make([]*Entry, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, c.entries[key])
	}
	return entries
}

// Reset drops every entry.
func (c *Channel) Reset() {
	c.order = nil
	c.entries = map[string]*Entry{}
}

func splitNamespace(namespace string) []string {
	var parts []string
	for _, part := range strings.Split(namespace, `\`) {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
