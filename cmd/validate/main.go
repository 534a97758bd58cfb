// Command validate reads a KML artifact produced by cmd/oval and checks its
// integrity: placemark inventory, time spans and ring geometry.
//
// Usage:
//
//	go run ./cmd/validate -kml oval.kml
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/couchcryptid/auroral-oval/internal/adapter/kml"
	"github.com/couchcryptid/auroral-oval/internal/domain"
)

// expectedBands is the placemark count per band name.
var expectedBands = map[string]int{"low": 2, "high": 2}

// maxLongitude allows for the +360 seam patch on the east half.
const maxLongitude = 2 * domain.FullRotation

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	path := flag.String("kml", "oval.kml", "path to the KML artifact")
	flag.Parse()

	if code := run(*path); code != 0 {
		os.Exit(code)
	}
}

func run(path string) int {
	fmt.Println("=== Auroral Oval Artifact Validation ===")
	fmt.Println()

	a, err := kml.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read %s: %v\n", path, err)
		return 1
	}

	latMin, latMax := domain.BuildGrid(domain.DefaultGridSpec(), 0).Lat.Bounds()
	phases := []*phase{
		validateInventory(a),
		validateTimeSpans(a),
		validateRings(a, latMin, latMax),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Document %q: %d placemarks, %d styles\n", a.Name, len(a.Placemarks), len(a.Styles))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phases ──

func validateInventory(a kml.Artifact) *phase {
	p := &phase{name: "Phase 1: Placemark inventory"}

	total := 0
	for _, n := range expectedBands {
		total += n
	}
	if len(a.Placemarks) != total {
		p.errorf("placemarks: want %d, got %d", total, len(a.Placemarks))
	}

	counts := map[string]int{}
	for i, pm := range a.Placemarks {
		counts[pm.Name]++
		if _, ok := expectedBands[pm.Name]; !ok {
			p.errorf("placemark %d: unexpected name %q", i, pm.Name)
		}
		id := pm.StyleURL
		if len(id) > 0 && id[0] == '#' {
			id = id[1:]
		}
		if _, ok := a.Styles[id]; !ok {
			p.errorf("placemark %d (%s): style %q not defined", i, pm.Name, pm.StyleURL)
		}
	}
	for name, want := range expectedBands {
		if counts[name] != want {
			p.errorf("band %s: want %d placemarks, got %d", name, want, counts[name])
		}
	}
	return p
}

func validateTimeSpans(a kml.Artifact) *phase {
	p := &phase{name: "Phase 2: Time spans"}

	for _, v := range []struct{ field, value string }{
		{"document begin", a.Span.Begin},
		{"document end", a.Span.End},
	} {
		if _, err := time.Parse(time.RFC3339, v.value); err != nil {
			p.errorf("%s %q: %v", v.field, v.value, err)
		}
	}
	for i, pm := range a.Placemarks {
		if pm.Span != a.Span {
			p.errorf("placemark %d (%s): span %s/%s differs from document %s/%s",
				i, pm.Name, pm.Span.Begin, pm.Span.End, a.Span.Begin, a.Span.End)
		}
	}
	return p
}

func validateRings(a kml.Artifact, latMin, latMax float64) *phase {
	p := &phase{name: "Phase 3: Ring geometry"}

	for i, pm := range a.Placemarks {
		ring := pm.Ring
		if len(ring) < 4 {
			p.errorf("placemark %d (%s): %d coordinates, want at least 4", i, pm.Name, len(ring))
			continue
		}
		if ring[0] != ring[len(ring)-1] {
			p.errorf("placemark %d (%s): ring not closed", i, pm.Name)
		}
		for j, c := range ring {
			if c.Lat < latMin || c.Lat > latMax {
				p.errorf("placemark %d (%s) vertex %d: latitude %g outside [%g, %g]", i, pm.Name, j, c.Lat, latMin, latMax)
			}
			if c.Lon < 0 || c.Lon > maxLongitude {
				p.errorf("placemark %d (%s) vertex %d: longitude %g outside [0, %g]", i, pm.Name, j, c.Lon, maxLongitude)
			}
		}
	}
	return p
}
