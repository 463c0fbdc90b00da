package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"gribdefs/internal"
	"gribdefs/internal/config"
	"gribdefs/internal/keys"
	"gribdefs/internal/ncep"
	"gribdefs/internal/pipeline"
	"gribdefs/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	cmd := "defs:build"
	args := []string{}
	if len(os.Args) >= 2 {
		cmd = os.Args[1]
		args = os.Args[2:]
	}

	switch cmd {
	case "defs:build":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		keysPath := fs.String("keys", cfg.KeysFile, "key list file, one discipline:category:number per line")
		out := fs.String("out", cfg.OutputDir, "output directory")
		_ = fs.Parse(args)

		keyList, err := keys.Load(*keysPath)
		must(err)
		fmt.Println("Looking up missing definitions for: (discipline, parameterCategory, parameterNumber)")
		printKeys(keyList)

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		svc := pipeline.NewRunService(db, cfg, os.Stdout)
		res, err := svc.Run(context.Background(), keyList, *out)
		must(err)
		fmt.Printf("build done trace=%s keys=%d tables=%d records=%d\n", res.TraceID, res.Keys, res.TablesFetched, res.Records)
		fmt.Printf("Write output to %s, %s, %s, %s in %s\n",
			pipeline.NameFile, pipeline.ParamIDFile, pipeline.ShortNameFile, pipeline.UnitsFile, *out)
	case "keys:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		keysPath := fs.String("keys", cfg.KeysFile, "key list file")
		_ = fs.Parse(args)
		keyList, err := keys.Load(*keysPath)
		must(err)
		printKeys(keyList)
		fmt.Printf("%d keys\n", len(keyList))
	case "table:show", "table:export":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		discipline := fs.Int("discipline", -1, "discipline number")
		category := fs.Int("category", -1, "parameter category number")
		out := fs.String("out", "", "output xlsx path (table:export)")
		_ = fs.Parse(args)
		if *discipline < 0 || *category < 0 {
			must(fmt.Errorf("--discipline and --category are required"))
		}
		if cmd == "table:export" && strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}

		client := ncep.NewClient(cfg)
		rows, err := client.FetchTable(context.Background(), *discipline, *category)
		must(err)
		pair := internal.TablePair{Discipline: *discipline, Category: *category}
		if cmd == "table:export" {
			must(pipeline.ExportRowsToXLSX(pair, rows, *out))
			fmt.Printf("exported %d rows of table %s to %s\n", len(rows), pair, *out)
			return
		}
		for _, row := range rows {
			fmt.Printf("%s\t%s\t%s\t%s\n", row.IDText, row.Name, row.Unit, row.ShortName)
		}
		fmt.Printf("%d rows from %s\n", len(rows), client.TableURL(*discipline, *category))
	case "runs:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "max runs")
		_ = fs.Parse(args)

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		runs, err := db.ListRuns(*limit)
		must(err)
		for _, run := range runs {
			fmt.Printf("%d %s status=%s trace=%s keys=%d tables=%d records=%d", run.ID, run.CreatedAt, run.Status, run.TraceID, run.Keys, run.TablesFetched, run.Records)
			if run.Error != "" {
				fmt.Printf(" error=%q", run.Error)
			}
			fmt.Println()
		}
		last, ok, err := pipeline.NewRunService(db, cfg, nil).LastBuild()
		must(err)
		if ok {
			fmt.Printf("last successful build: %s\n", last)
		}
	case "help", "-h", "--help":
		usage()
	default:
		usage()
		os.Exit(1)
	}
}

func printKeys(keyList []internal.ClassificationKey) {
	for _, k := range keyList {
		fmt.Printf("  (%d, %d, %d)\n", k.Discipline, k.Category, k.Number)
	}
}

func usage() {
	fmt.Println("usage: gribdefs [command]")
	fmt.Println("commands:")
	fmt.Println("  defs:build [--keys=keys.txt] [--out=.]   (default)")
	fmt.Println("  keys:list [--keys=keys.txt]")
	fmt.Println("  table:show --discipline=0 --category=1")
	fmt.Println("  table:export --discipline=0 --category=1 --out=./out/table.xlsx")
	fmt.Println("  runs:list [--limit=20]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
