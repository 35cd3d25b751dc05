// Package pkg provides the core libraries for Tiler, a composition and scaling
// engine for rectangular plaquette templates.
//
// # Overview
//
// A template is a rectangular grid of plaquette indices parameterised by a
// scale k. Templates are composed by declaring where each one sits relative
// to another; the composite is itself instantiable and scales as a whole.
// The pkg directory is organized into these areas:
//
//  1. [geom], [shape], [template] - Grids, scalable shapes, template wrappers
//  2. [orchestrator] - Relative placement, position resolution, composition
//  3. [layoutfile] - TOML/YAML/JSON layout definitions
//  4. [display] - ASCII, SVG, PNG and Graphviz renderings
//  5. [pipeline] - Build, resolve and render with caching
//  6. [cache], [store], [server] - Persistence and the HTTP API
//
// # Architecture
//
// The typical data flow through Tiler:
//
//	Layout file (toml/yaml/json)
//	         ↓
//	    [layoutfile] package (decode + validate)
//	         ↓
//	    [orchestrator] package (templates + relations, scale k)
//	         ↓
//	    [orchestrator.Layout] (resolved positions + plaquette grid)
//	         ↓
//	    [display] package → ASCII/SVG/PNG/PDF/JSON output
//
// # Quick Start
//
// Compose two squares side by side and print the result:
//
//	a, _ := template.NewAlternatingSquare(2)
//	b, _ := template.NewAlternatingSquare(2)
//
//	o := orchestrator.New()
//	ia, _ := o.AddTemplate(a, []int{1, 2})
//	ib, _ := o.AddTemplate(b, []int{3, 4})
//	_ = o.AddRelation(ib, geom.RightOf, ia)
//
//	o, _ = o.ScaleTo(3)
//	_ = display.ASCII(os.Stdout, o)
//
// # Scaling
//
// Every template reports its shape as a function of k. Scaling an
// orchestrator rescales each child and recomputes the absolute positions
// from the relations, so relative placement survives a change of scale.
// Shapes that share an instance (aliases) are scaled once.
//
// # Errors
//
// All packages return [errors.Error] values carrying a stable code such as
// ARITY or CONFLICTING_POSITIONS. Use [errors.Is] to test for a code and
// [errors.UserMessage] for CLI output.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                # All tests
//	go test ./pkg/orchestrator/...   # Specific package
//
// Redis and MongoDB backed tests run only when TILER_TEST_REDIS or
// TILER_TEST_MONGO point at a live server.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/tiler/pkg/geom
// [shape]: https://pkg.go.dev/github.com/matzehuels/tiler/pkg/shape
// [template]: https://pkg.go.dev/github.com/matzehuels/tiler/pkg/template
// [orchestrator]: https://pkg.go.dev/github.com/matzehuels/tiler/pkg/orchestrator
// [orchestrator.Layout]: https://pkg.go.dev/github.com/matzehuels/tiler/pkg/orchestrator#Layout
// [layoutfile]: https://pkg.go.dev/github.com/matzehuels/tiler/pkg/layoutfile
// [display]: https://pkg.go.dev/github.com/matzehuels/tiler/pkg/display
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tiler/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/tiler/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/tiler/pkg/store
// [server]: https://pkg.go.dev/github.com/matzehuels/tiler/pkg/server
// [errors.Error]: https://pkg.go.dev/github.com/matzehuels/tiler/pkg/errors#Error
// [errors.Is]: https://pkg.go.dev/github.com/matzehuels/tiler/pkg/errors#Is
// [errors.UserMessage]: https://pkg.go.dev/github.com/matzehuels/tiler/pkg/errors#UserMessage
package pkg
