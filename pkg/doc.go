// Package pkg provides the libraries behind coffeetier, a coffee tier list
// image generator.
//
// # Overview
//
// A user ranks the coffees of their year into six tiers (S, A, B, C, D, E),
// up to five per tier. Coffeetier renders those lists as a single shareable
// PNG report, or one tier at a time as a standalone table image. The pkg
// directory is organized into these areas:
//
//  1. [tier] - Domain model (categories, presentation table, drafts, submissions)
//  2. [render] - Pure rendering (table primitive, composite report, PNG encoding)
//  3. [pipeline] - Orchestration (validation gate, rendering, preview tables)
//  4. [io] - Draft files (TOML, YAML, JSON)
//  5. [session] - Form state for the web front end (memory, file, Redis)
//  6. [config], [errors], [observability], [fonts], [buildinfo] - Support
//
// # Architecture
//
// The typical data flow:
//
//	Web form / terminal form / draft file
//	         ↓
//	    [tier] Draft (raw slots, blanks allowed)
//	         ↓
//	    [pipeline] Runner (trim, drop blanks, "every category" gate)
//	         ↓
//	    [render] Composite or Table
//	         ↓
//	    PNG bytes
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/coffeetier/pkg/pipeline"
//	    "github.com/matzehuels/coffeetier/pkg/tier"
//	)
//
//	d := tier.NewDraft()
//	d.Name = "Ada"
//	for _, c := range tier.Categories() {
//	    d.Set(c, 1, "Kenya AA")
//	}
//
//	art, err := pipeline.NewRunner(nil).Generate(ctx, d)
//	if err != nil {
//	    return err
//	}
//	// art.Filename == "Ada_coffee_tier_list_2024.png"
//
// # Rendering
//
// Both renderers share one draw-one-table primitive. The composite report is a
// 2×3 grid whose slots and header colours come from [tier.Tiers], with a title
// banner above; the result is cropped to its non-white content plus padding.
// Renderers take a [tier.Submission] or plain rows and return bytes; they hold
// no shared mutable state and are safe to call concurrently.
//
// [tier]: https://pkg.go.dev/github.com/matzehuels/coffeetier/pkg/tier
// [render]: https://pkg.go.dev/github.com/matzehuels/coffeetier/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/coffeetier/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/coffeetier/pkg/io
// [session]: https://pkg.go.dev/github.com/matzehuels/coffeetier/pkg/session
// [config]: https://pkg.go.dev/github.com/matzehuels/coffeetier/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/coffeetier/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/coffeetier/pkg/observability
// [fonts]: https://pkg.go.dev/github.com/matzehuels/coffeetier/pkg/fonts
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/coffeetier/pkg/buildinfo
// [tier.Tiers]: https://pkg.go.dev/github.com/matzehuels/coffeetier/pkg/tier#Tiers
// [tier.Submission]: https://pkg.go.dev/github.com/matzehuels/coffeetier/pkg/tier#Submission
package pkg
