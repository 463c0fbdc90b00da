package pipeline

import (
	"testing"

	"gribdefs/internal"
)

func TestCompositeID(t *testing.T) {
	cases := []struct {
		key  internal.ClassificationKey
		want string
	}{
		{key: internal.ClassificationKey{Discipline: 0, Category: 2, Number: 5}, want: "70002005"},
		{key: internal.ClassificationKey{Discipline: 3, Category: 192, Number: 7}, want: "73192007"},
		{key: internal.ClassificationKey{Discipline: 0, Category: 16, Number: 198}, want: "70016198"},
	}
	for _, tc := range cases {
		if got := CompositeID(tc.key); got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.key, got, tc.want)
		}
	}
}

func TestFormatBlock(t *testing.T) {
	got := FormatBlock("Ice Cover", "ice cover", internal.ClassificationKey{Discipline: 10, Category: 2, Number: 0})
	want := "#Ice Cover\n'ice cover' = {\n    discipline = 10;\n    parameterCategory = 2;\n    parameterNumber = 0;\n}\n\n"
	if got != want {
		t.Fatalf("got %q", got)
	}
}
