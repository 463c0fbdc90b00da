package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gribdefs/internal"
)

func TestRunJournal(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "data", "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	failed := internal.RunRow{TraceID: "a1", Status: internal.RunStatusFailed, Keys: 3, TablesFetched: 1, Error: "parameter row not found"}
	if _, err := db.InsertRun(failed, map[string]float64{"totalMs": 12}, nil); err != nil {
		t.Fatal(err)
	}
	ok := internal.RunRow{TraceID: "b2", Status: internal.RunStatusOK, Keys: 3, TablesFetched: 2, Records: 3}
	runID, err := db.InsertRun(ok, map[string]float64{"totalMs": 40}, []string{"/tmp/name.def", "/tmp/units.def"})
	if err != nil {
		t.Fatal(err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("len=%d", len(runs))
	}
	if runs[0].TraceID != "b2" || runs[0].Records != 3 || runs[0].Error != "" {
		t.Fatalf("latest=%+v", runs[0])
	}
	if runs[1].Status != internal.RunStatusFailed || runs[1].Error == "" {
		t.Fatalf("failed=%+v", runs[1])
	}

	outputs, err := db.ListRunOutputs(int(runID))
	if err != nil {
		t.Fatal(err)
	}
	if len(outputs) != 2 || outputs[0] != "/tmp/name.def" {
		t.Fatalf("outputs=%v", outputs)
	}
}

func TestMetadata(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	missing, err := db.GetMetadata("defs.last_build")
	if err != nil || missing != nil {
		t.Fatalf("missing=%v err=%v", missing, err)
	}
	if err := db.SetMetadata("defs.last_build", "2026-10-15T00:00:00Z"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetMetadata("defs.last_build", "2026-10-16T00:00:00Z"); err != nil {
		t.Fatal(err)
	}
	got, err := db.GetMetadata("defs.last_build")
	if err != nil || got == nil || *got != "2026-10-16T00:00:00Z" {
		t.Fatalf("got=%v err=%v", got, err)
	}
}

func TestOpenUnwritablePath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(blocker, "data", "runs.db")
	_, err := Open(path)
	if err == nil || !strings.Contains(err.Error(), "open run journal "+path) {
		t.Fatalf("err=%v", err)
	}
}
