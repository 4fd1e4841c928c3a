package symb

import "testing"

func TestNewSymbolIsFreshAndValid(t *testing.T) {
	tab := NewSymbolTable()
	a := tab.NewSymbol()
	b := tab.NewSymbol()
	if !a.Valid() || !b.Valid() {
		t.Fatal("freshly minted symbols must be valid")
	}
	if a == b {
		t.Fatal("successive NewSymbol calls must mint distinct symbols")
	}
	if NoSym.Valid() {
		t.Fatal("NoSym must not be valid")
	}
}

func TestSymbolPath(t *testing.T) {
	root := Root()
	if root.RepresentsMultipleValues {
		t.Fatal("root path must not represent multiple values")
	}
	elem := root.Element()
	if !elem.RepresentsMultipleValues {
		t.Fatal("an array element path must represent multiple values")
	}
	field := root.Field()
	if field.RepresentsMultipleValues {
		t.Fatal("a field projection alone must not represent multiple values")
	}
}
