package crossing

import (
	"testing"

	lferrors "github.com/matzehuels/layerflow/pkg/errors"
)

func TestVerifyAcceptsPermutation(t *testing.T) {
	before := Levels{{"a", "b"}, {"x", "y"}}
	after := Levels{{"b", "a"}, {"y", "x"}}
	if err := Verify(before, after); err != nil {
		t.Errorf("unexpected error for valid permutation: %v", err)
	}
}

func TestVerifyRejectsDuplicate(t *testing.T) {
	before := Levels{{"a", "b"}}
	after := Levels{{"a", "a"}}
	err := Verify(before, after)
	if err == nil {
		t.Fatal("expected error for duplicate node")
	}
	if !lferrors.Is(err, lferrors.ErrCodeLayoutReducerDup) {
		t.Errorf("expected ErrCodeLayoutReducerDup, got %v", lferrors.GetCode(err))
	}
}

func TestVerifyRejectsMissingNode(t *testing.T) {
	before := Levels{{"a", "b"}}
	after := Levels{{"a", "c"}}
	err := Verify(before, after)
	if err == nil {
		t.Fatal("expected error for missing node")
	}
	if !lferrors.Is(err, lferrors.ErrCodeLayoutInternal) {
		t.Errorf("expected ErrCodeLayoutInternal, got %v", lferrors.GetCode(err))
	}
}

func TestVerifyRejectsLevelCountMismatch(t *testing.T) {
	before := Levels{{"a"}, {"b"}}
	after := Levels{{"a"}}
	if err := Verify(before, after); err == nil {
		t.Fatal("expected error for level count mismatch")
	}
}
