// Package rnote compiles RNote line markup into a styled HTML document and
// renders it to PDF using headless Chrome.
//
// # Quick Start
//
// Create a converter, convert a source, and close when done:
//
//	conv, err := rnote.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, rnote.Input{
//	    Source: "# Hello\n= World",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", result.PDF, 0644)
//
// The result contains the PDF bytes (result.PDF), the HTML document
// (result.HTML), the final page style and every diagnostic found while
// compiling. Problems in the source never fail a conversion; check
// result.HasErrors() to treat them as failures. Use Input.HTMLOnly to skip
// PDF generation.
//
// # Markup
//
// Each line is classified by its prefix:
//
//	// comment
//	.pp theme dark            preprocessor: theme, margin, size, align, title, template, pgnum
//	$hr                       insert: br, hr, date, wi <path>, li <path>
//	$table Name;Age           table header, then "- Alice;30" rows, closed by $endtable
//	# Title / @ Section / ! Sub
//	- item / -- nested item
//	= paragraph with **bold**, *italic*, __underline__, ~~strike~~ and $date
//
// # Conversion Pipeline
//
//  1. Compilation to an HTML document with an @page frame derived from the
//     page size, orientation and margins
//  2. Theme CSS injection
//  3. Rewriting of relative image paths against Input.SourceDir
//  4. PDF rendering via headless Chrome (go-rod)
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := rnote.NewConverter(
//	    rnote.WithTimeout(2 * time.Minute),
//	    rnote.WithAssetPath("/path/to/custom/assets"),
//	    rnote.WithDefaults(rnote.Defaults{PageSize: "a4"}),
//	)
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool to manage multiple browser instances:
//
//	pool := rnote.NewConverterPool(4, nil)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil { ... }
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Custom Assets
//
// Override built-in themes and templates using AssetLoader:
//
//	loader, err := rnote.NewAssetLoader("/path/to/assets")
//	conv, err := rnote.NewConverter(rnote.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── themes/
//	│   └── custom.css
//	└── templates/
//	    └── letterhead.rntp
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package rnote
