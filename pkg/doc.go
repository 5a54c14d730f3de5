// Package pkg provides the core libraries for mumplot synteny plots.
//
// # Overview
//
// mumplot draws maximal unique matches (MUMs) shared by several sequences as
// ribbons between horizontal tracks. The pkg directory is organized into
// three main areas:
//
//  1. Domain: [mums] (match records), [collinear] (block detection),
//     [geometry] (ribbon polygons)
//  2. Output: [render] (styles and the pixel frame), [render/sink] (PNG, SVG,
//     JSON)
//  3. Infrastructure: [pipeline] (load → geometry → render), [cache],
//     [config], [errors], [observability], [fonts], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	*.mums + *.lengths (+ *.filelist)
//	         ↓
//	    [mums] package (read, filter, sort)
//	         ↓
//	    [collinear] package (merge collinear runs into blocks)
//	         ↓
//	    [geometry] package (ribbon outlines per match or block)
//	         ↓
//	    [render/sink] package
//	         ↓
//	    PNG/SVG/JSON output
//
// # Quick Start
//
// Plot a prefix with caching disabled:
//
//	import (
//	    "context"
//
//	    "github.com/matzehuels/mumplot/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	opts := pipeline.Options{InputPrefix: "data/strains", Formats: []string{"png", "svg"}}
//	result, err := runner.Execute(context.Background(), opts)
//	if err != nil {
//	    return err
//	}
//	paths, err := runner.Write(result, opts)
//
// [mums]: github.com/matzehuels/mumplot/pkg/mums
// [collinear]: github.com/matzehuels/mumplot/pkg/collinear
// [geometry]: github.com/matzehuels/mumplot/pkg/geometry
// [render]: github.com/matzehuels/mumplot/pkg/render
// [render/sink]: github.com/matzehuels/mumplot/pkg/render/sink
// [pipeline]: github.com/matzehuels/mumplot/pkg/pipeline
// [cache]: github.com/matzehuels/mumplot/pkg/cache
// [config]: github.com/matzehuels/mumplot/pkg/config
// [errors]: github.com/matzehuels/mumplot/pkg/errors
// [observability]: github.com/matzehuels/mumplot/pkg/observability
// [fonts]: github.com/matzehuels/mumplot/pkg/fonts
// [buildinfo]: github.com/matzehuels/mumplot/pkg/buildinfo
package pkg
