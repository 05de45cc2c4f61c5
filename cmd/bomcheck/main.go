package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bomcheck/internal/bom"
	"bomcheck/internal/colorway"
	"bomcheck/internal/config"
	"bomcheck/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	table, err := colorway.Load(cfg.ColorwayTablePath)
	must(err)

	cmd := os.Args[1]
	switch cmd {
	case "extract":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		pdfPath := fs.String("pdf", "", "BOM PDF path")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if *pdfPath == "" {
			must(fmt.Errorf("--pdf is required"))
		}
		doc, err := pipeline.OpenPDFFile(*pdfPath)
		must(err)
		ext := pipeline.NewExtractor(table, cfg.StyleFallback).Extract(doc)
		outPath := *out
		if outPath == "" {
			outPath = filepath.Join(cfg.OutputDir, "bom_sections.xlsx")
		}
		must(pipeline.ExportExtractionToXLSX(ext, outPath))
		fmt.Printf("extract done style=%s colorBom=%d costing=%d care=%d diagnostics=%d output=%s\n",
			ext.Meta.Style, len(ext.ColorBom), len(ext.Costing), len(ext.CareContent), len(ext.Diagnostics), outPath)
	case "validate":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		pdfPath := fs.String("pdf", "", "BOM PDF path")
		cmpPath := fs.String("comparison", "", "comparison xlsx/csv/html path")
		styleCol := fs.String("style-col", "", "comparison column holding the style number")
		colorCol := fs.String("color-col", "", "comparison column holding the color reference")
		out := fs.String("out", "", "output path")
		format := fs.String("format", cfg.ExportFormat, "xlsx|csv")
		_ = fs.Parse(os.Args[2:])
		if *pdfPath == "" || *cmpPath == "" || *styleCol == "" || *colorCol == "" {
			must(fmt.Errorf("--pdf --comparison --style-col --color-col are required"))
		}

		doc, err := pipeline.OpenPDFFile(*pdfPath)
		must(err)
		ext := pipeline.NewExtractor(table, cfg.StyleFallback).Extract(doc)
		index := bom.Build(ext)

		set, err := pipeline.ReadComparisonFile(*cmpPath)
		must(err)
		validator := pipeline.NewValidator(cfg, table, index)
		results, err := validator.Validate(set, *styleCol, *colorCol)
		must(err)

		outPath := *out
		if outPath == "" {
			outPath = filepath.Join(cfg.OutputDir, "validated_bom."+*format)
		}
		switch strings.ToLower(*format) {
		case "csv":
			must(pipeline.ExportResultsToCSV(set, results, outPath))
		default:
			must(pipeline.ExportResultsToXLSX(set, results, outPath))
		}

		if summary := pipeline.DiagnosticsSummary(ext.Diagnostics); summary != "" {
			fmt.Println(summary)
		}
		counts := map[string]int{}
		for _, res := range results {
			counts[string(res.Verdict)]++
		}
		fmt.Printf("validate done rows=%d validated=%d partial=%d mismatch=%d error=%d output=%s\n",
			len(results), counts["VALIDATED"], counts["PARTIAL"], counts["MISMATCH"], counts["ERROR"], outPath)
	case "colorways":
		for _, e := range table.Entries() {
			fmt.Printf("%s\t%s\n", e.Code, e.Name)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: bomcheck <command>")
	fmt.Println("commands:")
	fmt.Println("  extract   --pdf=bom.pdf [--out=sections.xlsx]")
	fmt.Println("  validate  --pdf=bom.pdf --comparison=cmp.xlsx --style-col=... --color-col=... [--out=...] [--format=xlsx|csv]")
	fmt.Println("  colorways")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
