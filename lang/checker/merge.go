package checker

import "toyc/lang/token"

// mergeParallelScopes unifies the scopes produced by checking the arms of
// an if/elif/else chain. A name that appears in more than one arm must
// resolve to the same type in all of them, or it's a diagnostic. A name
// that appears in every arm (only possible when hasElse, since otherwise
// control may skip every block) is folded into the result so it's visible
// after the chain, under the first arm's UID. Each arm still declared its
// own Symbol with its own UID (and so its own stack slot), so the caller
// must also call reconcileArmUIDs on every arm but the first to copy the
// value into the canonical UID's slot before the chain's instructions end.
func mergeParallelScopes(arms []scope, hasElse bool) (scope, *Error) {
	count := map[token.NameID]int{}
	first := map[token.NameID]*Symbol{}

	for _, arm := range arms {
		for name, sym := range arm {
			count[name]++
			if f, ok := first[name]; ok {
				if !f.Type.Equal(sym.Type) {
					return nil, &Error{Range: sym.Range, Message: "type doesn't match earlier branch's declaration"}
				}
			} else {
				first[name] = sym
			}
		}
	}

	merged := scope{}
	if hasElse {
		for name, n := range count {
			if n == len(arms) {
				merged[name] = first[name]
			}
		}
	}
	return merged, nil
}

// reconcileArmUIDs appends a copy into merged's canonical UID for every name
// arm declared under a different UID, so that whichever arm of an
// if/elif/else chain actually ran, the value ends up in the one stack slot
// every reference after the chain reads from. A name arm declared that
// isn't in merged (didn't appear in every arm) needs no copy: it never
// becomes visible after the chain.
func reconcileArmUIDs(body []TStmt, arm, merged scope) []TStmt {
	for name, msym := range merged {
		asym, ok := arm[name]
		if !ok || asym.UID == msym.UID {
			continue
		}
		body = append(body, TAssign{UID: msym.UID, Value: TIdent{UID: asym.UID, Type: asym.Type}})
	}
	return body
}

// foldIntoParent merges a block's own scope into the scope one level up, so
// names it declared are visible to statements that lexically follow the
// block. It is used for a while loop's body and its else clause, and for
// the scope mergeParallelScopes returns for an if/elif/else chain; it makes
// no arm-consistency check of its own.
func (c *Checker) foldIntoParent(child scope) {
	parent := c.scopes[len(c.scopes)-1]
	for name, sym := range child {
		parent[name] = sym
	}
}
