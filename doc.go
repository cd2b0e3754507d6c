// Package doc2tex converts Word (.docx) and Markdown documents into LaTeX
// source fragments and repairs the escaping artifacts that external
// converters leave behind.
//
// # Quick Start
//
// Create a converter and run it over a file or a directory:
//
//	conv, err := doc2tex.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := conv.Run(ctx, "chapters/", "build/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(report.Summary())
//
// Each supported source produces one .tex file. Per-file failures are
// recorded in the Report and never abort the batch; only a missing input
// root makes Run return an error.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Extraction: DOCX paragraphs from word/document.xml, or Markdown text
//  2. Translation: block classification and LaTeX emission (native engine),
//     or an external Pandoc run (pandoc engine)
//  3. Repair: the rule catalogue in internal/repair, applied once per pass
//  4. Output: one UTF-8 .tex per source and an optional integration file
//     with one \input line per converted document
//
// # Engines
//
// The default NativeEngine needs no external tools. PandocEngine delegates
// translation to the pandoc executable; its output is where the repair
// rules usually find work to do.
//
// # Logging
//
// Components log through log/slog. Pass WithLogger to route records to a
// specific handler; otherwise slog.Default is used.
package doc2tex
