package seekpager

type (
	tDisjunct []Compare

	// tDNF represents the disjunctive normal form (DNF) of a logical expression.
	// Each disjunct is joined by OR, and each disjunct consists of a list of
	// conjuncts which are joined by AND. A conjunct is a Compare node.
	//
	// Thus:
	//
	//	DNF = X1 OR X2 ... OR Xn, where Xi = Ai1 AND Ai2 ... AND Aim.
	//	DNF = (A11 AND A12 AND A13) OR (A21 AND A22 AND A23), for n=2, m=3.
	//
	//  Where (A11 AND A12 AND A13), (A21 AND A22 AND A23) are disjuncts and
	//  A11, A12, A13, A21, A22, A23 are conjuncts.
	tDNF []tDisjunct
)

// toPredicate folds a disjunct (K1, K2, K3) into ((K1 AND K2) AND K3).
// Returns nil for an empty disjunct.
func (d tDisjunct) toPredicate() Predicate {
	var ret Predicate
	for _, conjunct := range d {
		if ret == nil {
			ret = conjunct
			continue
		}

		ret = And{Left: ret, Right: conjunct}
	}

	return ret
}

// toPredicate folds the DNF into a left-nested OR chain of its disjuncts.
// Empty disjuncts are skipped; an empty DNF yields nil.
func (d tDNF) toPredicate() Predicate {
	var ret Predicate
	for _, disjunct := range d {
		p := disjunct.toPredicate()
		if p == nil {
			continue
		}

		if ret == nil {
			ret = p
			continue
		}

		ret = Or{Left: ret, Right: p}
	}

	return ret
}
