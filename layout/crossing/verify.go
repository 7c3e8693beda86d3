package crossing

import (
	lferrors "github.com/matzehuels/layerflow/pkg/errors"
)

// Verify checks that levels after reduction still contain exactly the
// node ids present before reduction, with the same per-level counts, no
// duplicates and no losses. It is run by default after every reducer
// pipeline and can be skipped via the pipeline's skip_validation option.
func Verify(before, after Levels) error {
	if len(before) != len(after) {
		lferrors.SetLastDiagnostic(lferrors.ErrCodeLayoutInternal, nil, "reducer corrupted levels: level count changed")
		return lferrors.New(lferrors.ErrCodeLayoutInternal, "reducer corrupted levels: level count changed from %d to %d", len(before), len(after))
	}

	for l := range before {
		if len(before[l]) != len(after[l]) {
			lferrors.SetLastDiagnostic(lferrors.ErrCodeLayoutInternal, after[l], "reducer corrupted levels: per-level count mismatch")
			return lferrors.New(lferrors.ErrCodeLayoutInternal, "reducer corrupted levels: level %d had %d nodes, now has %d", l, len(before[l]), len(after[l]))
		}

		seen := make(map[string]bool, len(after[l]))
		for _, id := range after[l] {
			if seen[id] {
				lferrors.SetLastDiagnostic(lferrors.ErrCodeLayoutReducerDup, []string{id}, "duplicate node after reduction")
				return lferrors.New(lferrors.ErrCodeLayoutReducerDup, "duplicate node %q in level %d after reduction", id, l)
			}
			seen[id] = true
		}

		beforeSet := make(map[string]bool, len(before[l]))
		for _, id := range before[l] {
			beforeSet[id] = true
		}
		for _, id := range after[l] {
			if !beforeSet[id] {
				lferrors.SetLastDiagnostic(lferrors.ErrCodeLayoutInternal, []string{id}, "mismatch: node not present before reduction")
				return lferrors.New(lferrors.ErrCodeLayoutInternal, "mismatch: node %q in level %d was not present before reduction", id, l)
			}
		}
		for _, id := range before[l] {
			if !seen[id] {
				lferrors.SetLastDiagnostic(lferrors.ErrCodeLayoutInternal, []string{id}, "missing node after reduction")
				return lferrors.New(lferrors.ErrCodeLayoutInternal, "missing node %q from level %d after reduction", id, l)
			}
		}
	}

	return nil
}
