package internal

import "fmt"

// ClassificationKey identifies one required definition: a row with
// parameter number Number in the (Discipline, Category) table.
type ClassificationKey struct {
	Discipline int
	Category   int
	Number     int
}

func (k ClassificationKey) String() string {
	return fmt.Sprintf("%d:%d:%d", k.Discipline, k.Category, k.Number)
}

// TablePair returns the (discipline, category) table the key lives in.
func (k ClassificationKey) TablePair() TablePair {
	return TablePair{Discipline: k.Discipline, Category: k.Category}
}

type TablePair struct {
	Discipline int
	Category   int
}

func (p TablePair) String() string {
	return fmt.Sprintf("%d-%d", p.Discipline, p.Category)
}

// TableRow is one normalized data row of a parameter table. HasID is false
// when the identifier cell was not a plain number; IDText then keeps the
// cleaned cell text.
type TableRow struct {
	ID        int
	IDText    string
	HasID     bool
	Name      string
	Unit      string
	ShortName string
}

type DefinitionRecord struct {
	Key ClassificationKey
	Row TableRow
}

type RunRow struct {
	ID            int
	TraceID       string
	Status        string
	Keys          int
	TablesFetched int
	Records       int
	Error         string
	TimingsJSON   string
	CreatedAt     string
}

const (
	RunStatusOK     = "ok"
	RunStatusFailed = "failed"
)
