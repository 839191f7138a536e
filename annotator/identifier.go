package annotator

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/minio/highwayhash"

	"github.com/viant/jsxmark/markup"
)

// idLength is the fingerprint length in hex characters
const idLength = 12

var hashKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// assignID ensures the element carries a stable, collision-free editor id
// and returns it. An author-supplied id is preserved when it is non-blank
// and not yet consumed within this component; otherwise a fingerprint of the
// ancestor-tag path, the running counter and the filename is synthesized.
// When suffix names a per-iteration expression, the written attribute value
// becomes a template literal combining the static id with that expression so
// each rendered loop instance is distinguishable at runtime.
func assignID(element *markup.Element, ctx *Context, suffix string) string {
	// the counter advances on every assignment, adopted or synthesized, so
	// a re-run over already-annotated output reproduces the same sequence
	ctx.counter++

	if attr := element.Attr(AttrEditorID); attr != nil && !attr.IsExpr {
		if id := strings.TrimSpace(attr.Value); id != "" && !ctx.usedIDs[id] {
			ctx.usedIDs[id] = true
			return id
		}
	}

	id := fingerprint(ctx)
	for ctx.usedIDs[id] {
		ctx.counter++
		id = fingerprint(ctx)
	}
	ctx.usedIDs[id] = true

	if suffix == "" {
		element.SetAttr(AttrEditorID, id)
	} else {
		element.SetAttrExpr(AttrEditorID, "`"+id+"-${"+suffix+"}`")
	}
	return id
}

func fingerprint(ctx *Context) string {
	seed := fmt.Sprintf("%s.el:%d:%s", strings.Join(ctx.path, "."), ctx.counter, ctx.filename)
	sum := highwayhash.Sum128([]byte(seed), hashKey)
	return hex.EncodeToString(sum[:])[:idLength]
}
