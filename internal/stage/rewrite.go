package stage

// Rewrite implements the exact four-step algorithm of §4.3: it returns a
// new stage list guaranteeing the output is totally ordered by a terminal
// Sort that includes __name__. This is the only rewriting the core
// performs. It is the identity for an input that ends in a Sort, in which
// every Sort already orders on __name__, and in which no Limit comes before
// the first Sort.
func Rewrite(stages []Stage) []Stage {
	out := make([]Stage, 0, len(stages)+1)
	sawSort := false

	for _, s := range stages {
		switch st := s.(type) {
		case Sort:
			terms := st.Terms
			if !hasNameField(terms) {
				terms = append(append([]OrderTerm{}, terms...), nameOrderTerm())
			}
			out = append(out, Sort{Terms: terms})
			sawSort = true
		case Limit:
			if !sawSort {
				out = append(out, Sort{Terms: []OrderTerm{nameOrderTerm()}})
				sawSort = true
			}
			out = append(out, st)
		default:
			out = append(out, s)
		}
	}

	if !sawSort {
		out = append(out, Sort{Terms: []OrderTerm{nameOrderTerm()}})
	}
	return out
}
