package pipeline

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"gribdefs/internal"
	"gribdefs/internal/config"
	"gribdefs/internal/ncep"
	"gribdefs/internal/storage"
)

const lastBuildKey = "defs.last_build"

type RunService struct {
	db       *storage.DB
	cfg      config.Config
	source   TableSource
	progress io.Writer
}

func NewRunService(db *storage.DB, cfg config.Config, progress io.Writer) *RunService {
	return &RunService{db: db, cfg: cfg, source: ncep.NewClient(cfg), progress: progress}
}

type RunResult struct {
	TraceID       string
	Keys          int
	TablesFetched int
	Records       int
	Outputs       []string
}

// Run builds the definitions for keyList and writes them to outDir. Files are
// only written when every key resolved. Each attempt is journaled.
func (s *RunService) Run(ctx context.Context, keyList []internal.ClassificationKey, outDir string) (RunResult, error) {
	start := time.Now()
	res := RunResult{TraceID: traceID()}

	built, err := NewBuilder(s.source, s.progress).Build(ctx, keyList)
	buildMs := float64(time.Since(start).Milliseconds())
	if err != nil {
		jerr := s.journal(res, internal.RunStatusFailed, err, map[string]float64{"buildMs": buildMs, "totalMs": buildMs})
		return res, errors.Join(err, jerr)
	}
	res.Keys = built.Keys
	res.TablesFetched = built.TablesFetched
	res.Records = len(built.Definitions.Records)

	outputs, err := WriteDefinitions(built.Definitions, outDir)
	totalMs := float64(time.Since(start).Milliseconds())
	if err != nil {
		jerr := s.journal(res, internal.RunStatusFailed, err, map[string]float64{"buildMs": buildMs, "totalMs": totalMs})
		return res, errors.Join(err, jerr)
	}
	res.Outputs = outputs

	if err := s.journal(res, internal.RunStatusOK, nil, map[string]float64{"buildMs": buildMs, "totalMs": totalMs}); err != nil {
		return res, err
	}
	if err := s.db.SetMetadata(lastBuildKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return res, err
	}
	return res, nil
}

func (s *RunService) journal(res RunResult, status string, runErr error, timings map[string]float64) error {
	row := internal.RunRow{
		TraceID:       res.TraceID,
		Status:        status,
		Keys:          res.Keys,
		TablesFetched: res.TablesFetched,
		Records:       res.Records,
	}
	if runErr != nil {
		row.Error = runErr.Error()
	}
	if _, err := s.db.InsertRun(row, timings, res.Outputs); err != nil {
		return fmt.Errorf("journal run %s: %w", res.TraceID, err)
	}
	return nil
}

// LastBuild returns the time of the last successful build, if any.
func (s *RunService) LastBuild() (string, bool, error) {
	v, err := s.db.GetMetadata(lastBuildKey)
	if err != nil || v == nil {
		return "", false, err
	}
	return *v, true, nil
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
