package pedigree

import "testing"

func TestSame(t *testing.T) {
	a := horse(1, "Luna", SexFemale)
	renamed := horse(1, "Luna II", SexMale)
	other := horse(2, "Luna", SexFemale)
	noID := Horse{Name: "Luna"}

	cases := []struct {
		name string
		a, b *Horse
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", &a, nil, false},
		{"other nil", nil, &a, false},
		{"same id different fields", &a, &renamed, true},
		{"different id same fields", &a, &other, false},
		{"missing id", &noID, &noID, false},
		{"one missing id", &a, &noID, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Same(tc.a, tc.b); got != tc.want {
				t.Fatalf("Same = %v, want %v", got, tc.want)
			}
			if got := Same(tc.b, tc.a); got != tc.want {
				t.Fatalf("Same not symmetric")
			}
		})
	}
}

func TestSameRef(t *testing.T) {
	mare := horse(42, "Luna", SexFemale)
	if !SameRef(ParentID(42), ParentRecord(&mare)) {
		t.Fatalf("unresolved and resolved with same id must be equal")
	}
	if !SameRef(NoParent(), NoParent()) {
		t.Fatalf("absent refs must be equal")
	}
	if SameRef(NoParent(), ParentID(42)) || SameRef(ParentID(1), ParentID(2)) {
		t.Fatalf("unexpected equality")
	}
}
