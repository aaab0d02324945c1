package arch_test

import "testing"

// layers places each internal package in the dependency DAG. A package may
// import packages at its own layer or below, never above.
var layers = map[string]int{
	// Data structures and leaf infrastructure.
	"ansi":      0,
	"dsf":       0,
	"pq":        0,
	"setop":     0,
	"imghash":   0,
	"lru":       0,
	"config":    0,
	"logging":   0,
	"telemetry": 0,

	// Components built from the layer below.
	"blobstore": 1,
	"script":    1,
}

// standalone lists packages that must not import any other internal package.
var standalone = []string{"dsf", "pq", "setop", "imghash", "lru"}

// TestDependencyLayering verifies that no internal package imports a package
// from a higher layer.
func TestDependencyLayering(t *testing.T) {
	t.Parallel()

	for _, pkg := range internalPackages(t) {
		from, ok := layers[pkg]
		if !ok {
			continue // reported by TestNoUnknownPackages
		}
		for _, imp := range importsOf(t, pkg) {
			if to, ok := layers[imp]; ok && to > from {
				t.Errorf("layer violation: %s (layer %d) imports %s (layer %d)", pkg, from, imp, to)
			}
		}
	}
}

// TestStandaloneUtilities verifies that the data-structure packages stay
// independent of each other and of the application packages.
func TestStandaloneUtilities(t *testing.T) {
	t.Parallel()

	for _, pkg := range standalone {
		if imps := importsOf(t, pkg); len(imps) > 0 {
			t.Errorf("%s must not import internal packages, imports %v", pkg, imps)
		}
	}
}

// TestNoUnknownPackages forces every new internal package into the layers map.
func TestNoUnknownPackages(t *testing.T) {
	t.Parallel()

	for _, pkg := range internalPackages(t) {
		if _, ok := layers[pkg]; !ok {
			t.Errorf("package %s has no layer assignment; add it to the layers map", pkg)
		}
	}
}
