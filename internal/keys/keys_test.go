package keys

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gribdefs/internal"
)

func TestParse(t *testing.T) {
	key, err := Parse(" 3:192:7 ")
	if err != nil {
		t.Fatal(err)
	}
	want := internal.ClassificationKey{Discipline: 3, Category: 192, Number: 7}
	if key != want {
		t.Fatalf("got %+v want %+v", key, want)
	}
	if key.String() != "3:192:7" {
		t.Fatalf("string=%q", key.String())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "0:1", "0:1:2:3", "a:1:2", "0:-1:2", "0:1:"} {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); !errors.Is(err, ErrMalformedKey) {
				t.Fatalf("err=%v", err)
			}
		})
	}
}

func TestParseAllDedupesKeepingFirstOccurrence(t *testing.T) {
	got, err := ParseAll([]string{"0:7:199", "0:7:200", "0:7:199", "0:1:8", "0:7:200"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"0:7:199", "0:7:200", "0:1:8"}
	if len(got) != len(want) {
		t.Fatalf("len=%d", len(got))
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Fatalf("idx %d got %s want %s", i, got[i], want[i])
		}
	}
}

func TestParseAllFailsFast(t *testing.T) {
	if _, err := ParseAll([]string{"0:1:8", "0:x:1"}); !errors.Is(err, ErrMalformedKey) {
		t.Fatalf("err=%v", err)
	}
}

func TestDefaults(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 29 {
		t.Fatalf("len=%d", len(got))
	}
	if got[0].String() != "0:16:3" || got[len(got)-1].String() != "0:3:200" {
		t.Fatalf("first=%s last=%s", got[0], got[len(got)-1])
	}
}

func TestRead(t *testing.T) {
	input := "# missing params\n0:1:8\n\n  0:1:8\n2:0:194\n"
	got, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len=%d", len(got))
	}

	_, err = Read(strings.NewReader("0:1:8\nbad\n"))
	if !errors.Is(err, ErrMalformedKey) || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err=%v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.txt")
	if err := os.WriteFile(path, []byte("3:192:1\n3:192:2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1].Number != 2 {
		t.Fatalf("got %+v", got)
	}
}
