package ast

import "github.com/RoaringBitmap/roaring/v2"

// inspect calls fn for every expression reachable from body, in source order.
func inspect(body []Statement, fn func(Expression)) {
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ExpressionStatement:
			fn(s.Expression)
		case *BlockStatement:
			inspect(s.Body.Slice(), fn)
		}
	}
}

// ResolveReferences fills the reference id of every identifier whose name is in
// symbols and returns the number of identifiers left unresolved.
func ResolveReferences(p *Program, symbols map[string]ReferenceID) int {
	unresolved := 0
	inspect(p.Body.Slice(), func(e Expression) {
		ident, ok := e.(*IdentifierReference)
		if !ok {
			return
		}
		if id, ok := symbols[ident.Name]; ok {
			ident.ReferenceID.Set(id)
			return
		}
		unresolved++
	})
	return unresolved
}

// ReferenceIDs returns the set of resolved reference ids in p.
func ReferenceIDs(p *Program) *roaring.Bitmap {
	ids := roaring.New()
	inspect(p.Body.Slice(), func(e Expression) {
		if ident, ok := e.(*IdentifierReference); ok {
			if id := ident.ReferenceID.Get(); id.IsResolved() {
				ids.Add(uint32(id))
			}
		}
	})
	return ids
}
