package earley

import "github.com/alecthomas/repr"

// Repr pretty-prints v for debugging, e.g. a readable dump of a *Tree in a test failure message.
// Nothing in the parser or pruner calls it. Grounded in the
// teacher's own use of github.com/alecthomas/repr in cmd/participle for dumping parsed ASTs.
func Repr(v interface{}) string {
	return repr.String(v, repr.Indent("  "))
}
