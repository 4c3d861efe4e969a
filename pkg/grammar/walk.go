package grammar

// children returns the direct sub-nodes of a grammar node.
func children(n Node) []Node {
	switch v := n.(type) {
	case *optional:
		return []Node{v.inner}
	case *exclude:
		return []Node{v.inner, v.unless}
	case *wrap:
		return []Node{v.inner}
	case *Sequence:
		return append(append([]Node{}, v.Children...), v.Terminators...)
	case *Choice:
		return append(append([]Node{}, v.Alts...), v.Terminators...)
	case *Repeat:
		return append([]Node{v.Inner}, v.Terminators...)
	case *DelimitedList:
		return append([]Node{v.Inner, v.Delimiter}, v.Terminators...)
	case *BracketPair:
		return []Node{v.Open, v.Inner, v.Close}
	}
	return nil
}

// Refs returns the names of all rule references appearing anywhere in n.
// Referenced rules are not followed; dialect expansion walks the rule
// table iteratively to validate transitive reachability.
func Refs(n Node) []string {
	var names []string
	var visit func(Node)
	visit = func(node Node) {
		if r, ok := node.(*ref); ok {
			names = append(names, r.name)
			return
		}
		for _, c := range children(node) {
			visit(c)
		}
	}
	visit(n)
	return names
}
