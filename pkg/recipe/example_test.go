package recipe_test

import (
	"fmt"
	"strings"

	"github.com/mdpkg/mdpkg/pkg/recipe"
)

// Parse a toml recipe into a recipe struct
func ExampleLoad() {
	raw := `
	[package]
	name = "trajkit"
	version = "1.0.0"
`
	parsed, _ := recipe.Load(strings.NewReader(raw))
	fmt.Println(parsed.Package.Name)
	// Output:
	// trajkit
}

// Build a recipe in code and serialize it to toml
func ExampleRecipe_marshal() {
	r := recipe.New()
	r.Package.Name = "trajkit"
	r.Package.Version = "1.0.0"
	r.Build.EntryPoints["mdinspect"] = "bin/mdinspect"

	fmt.Println(r.String()) // or r.Buffer() to get it as a buffer
}
