package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gribdefs/internal"
	"gribdefs/internal/keys"
	"gribdefs/internal/ncep"
)

var (
	ErrRowNotFound  = errors.New("parameter row not found")
	ErrAmbiguousRow = errors.New("parameter row is ambiguous")
)

type TableSource interface {
	FetchTable(ctx context.Context, discipline, category int) ([]internal.TableRow, error)
}

// Definitions holds the four definition buffers of one build. Each key
// contributes exactly one block to every buffer.
type Definitions struct {
	Name      strings.Builder
	ParamID   strings.Builder
	ShortName strings.Builder
	Units     strings.Builder

	Records []internal.DefinitionRecord
}

func (d *Definitions) add(rec internal.DefinitionRecord) {
	d.Name.WriteString(FormatBlock(rec.Row.Name, rec.Row.Name, rec.Key))
	d.ParamID.WriteString(FormatBlock(rec.Row.Name, CompositeID(rec.Key), rec.Key))
	d.ShortName.WriteString(FormatBlock(rec.Row.Name, rec.Row.ShortName, rec.Key))
	d.Units.WriteString(FormatBlock(rec.Row.Name, rec.Row.Unit, rec.Key))
	d.Records = append(d.Records, rec)
}

type BuildResult struct {
	Definitions   *Definitions
	Keys          int
	TablesFetched int
}

type Builder struct {
	source   TableSource
	progress io.Writer
}

// NewBuilder returns a builder reading tables from source. Progress lines go
// to progress; pass nil to silence them.
func NewBuilder(source TableSource, progress io.Writer) *Builder {
	if progress == nil {
		progress = io.Discard
	}
	return &Builder{source: source, progress: progress}
}

// Build fetches every table the keys refer to, once per (discipline,
// category) pair, and assembles the definition buffers. Any missing or
// ambiguous row aborts the whole build.
func (b *Builder) Build(ctx context.Context, keyList []internal.ClassificationKey) (BuildResult, error) {
	unique := keys.Dedupe(keyList)
	groups := groupKeys(unique)

	cache, err := ncep.NewRunCache(b.source, countPairs(groups))
	if err != nil {
		return BuildResult{}, err
	}

	defs := &Definitions{}
	for _, disc := range groups {
		for _, cat := range disc.categories {
			rows, err := cache.FetchTable(ctx, disc.discipline, cat.category)
			if err != nil {
				return BuildResult{}, err
			}
			fmt.Fprintf(b.progress, "fetched table discipline=%d category=%d rows=%d\n", disc.discipline, cat.category, len(rows))

			for _, key := range cat.keys {
				row, err := findRow(rows, key)
				if err != nil {
					return BuildResult{}, err
				}
				defs.add(internal.DefinitionRecord{Key: key, Row: row})
			}
		}
	}

	return BuildResult{Definitions: defs, Keys: len(unique), TablesFetched: cache.Fetches()}, nil
}

func findRow(rows []internal.TableRow, key internal.ClassificationKey) (internal.TableRow, error) {
	var found *internal.TableRow
	for i := range rows {
		if !rows[i].HasID || rows[i].ID != key.Number {
			continue
		}
		if found != nil {
			return internal.TableRow{}, fmt.Errorf("%w: discipline=%d category=%d id=%d", ErrAmbiguousRow, key.Discipline, key.Category, key.Number)
		}
		found = &rows[i]
	}
	if found == nil {
		return internal.TableRow{}, fmt.Errorf("%w: discipline=%d category=%d id=%d", ErrRowNotFound, key.Discipline, key.Category, key.Number)
	}
	return *found, nil
}

type categoryGroup struct {
	category int
	keys     []internal.ClassificationKey
}

type disciplineGroup struct {
	discipline int
	categories []*categoryGroup
}

// groupKeys groups keys by discipline, then category, in first-seen order.
func groupKeys(keyList []internal.ClassificationKey) []*disciplineGroup {
	var out []*disciplineGroup
	byDiscipline := map[int]*disciplineGroup{}
	byPair := map[internal.TablePair]*categoryGroup{}

	for _, key := range keyList {
		disc, ok := byDiscipline[key.Discipline]
		if !ok {
			disc = &disciplineGroup{discipline: key.Discipline}
			byDiscipline[key.Discipline] = disc
			out = append(out, disc)
		}
		cat, ok := byPair[key.TablePair()]
		if !ok {
			cat = &categoryGroup{category: key.Category}
			byPair[key.TablePair()] = cat
			disc.categories = append(disc.categories, cat)
		}
		cat.keys = append(cat.keys, key)
	}
	return out
}

func countPairs(groups []*disciplineGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.categories)
	}
	return n
}
