package annotator

import (
	"github.com/viant/jsxmark/markup"
)

// Context carries the annotation state for one file: the identifier
// counter, the set of consumed ids, the ancestor tag path and the elements
// the loop pass has already handled. It is never shared across files, which
// keeps identifier assignment deterministic and isolated.
type Context struct {
	filename string
	counter  int
	usedIDs  map[string]bool
	path     []string
	visited  map[*markup.Element]bool
}

func newContext(filename string) *Context {
	return &Context{
		filename: filename,
		usedIDs:  make(map[string]bool),
		visited:  make(map[*markup.Element]bool),
	}
}

func (c *Context) push(tag string) {
	c.path = append(c.path, tag)
}

func (c *Context) pop() {
	c.path = c.path[:len(c.path)-1]
}
