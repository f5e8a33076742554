package architecture_test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
)

const modulePrefix = "neurocalm/internal/modules/"

// layers in the order they are matched against a file path.
var layers = []string{"adapter/in", "adapter/out", "port/in", "port/out", "usecase", "service", "domain", "dto"}

type goImport struct {
	file   string
	module string
	layer  string
	path   string
}

func TestModuleLayerImports(t *testing.T) {
	t.Parallel()
	for _, imp := range collectImports(t, filepath.Join("..", "modules")) {
		if imp.module == "" || imp.layer == "" {
			continue
		}
		if strings.HasPrefix(imp.path, "neurocalm/internal/ui") || strings.HasPrefix(imp.path, "neurocalm/internal/bootstrap") {
			t.Errorf("%s: module code imports the shell package %s", imp.file, imp.path)
			continue
		}
		if !strings.HasPrefix(imp.path, modulePrefix) {
			continue
		}
		if reason := layerViolation(imp); reason != "" {
			t.Errorf("%s (%s) imports %s: %s", imp.file, imp.layer, imp.path, reason)
		}
	}
}

func TestPlatformIsModuleFree(t *testing.T) {
	t.Parallel()
	for _, imp := range collectImports(t, filepath.Join("..", "platform")) {
		if strings.HasPrefix(imp.path, modulePrefix) || strings.HasPrefix(imp.path, "neurocalm/internal/ui") {
			t.Errorf("%s: platform code imports %s", imp.file, imp.path)
		}
	}
}

func collectImports(t *testing.T, root string) []goImport {
	t.Helper()
	fset := token.NewFileSet()
	var out []goImport
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		slash := filepath.ToSlash(path)
		for _, spec := range node.Imports {
			out = append(out, goImport{
				file:   slash,
				module: owningModule(slash),
				layer:  layerOf(slash),
				path:   strings.Trim(spec.Path.Value, `"`),
			})
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return out
}

func owningModule(path string) string {
	_, rest, ok := strings.Cut(path, "modules/")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(rest, "/")
	return name
}

func layerOf(path string) string {
	for _, layer := range layers {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func touches(importPath string, parts ...string) bool {
	for _, p := range parts {
		if strings.Contains(importPath, "/"+p+"/") || strings.HasSuffix(importPath, "/"+p) {
			return true
		}
	}
	return false
}

// layerViolation returns why imp breaks the dependency rules, or "".
func layerViolation(imp goImport) string {
	if !strings.HasPrefix(imp.path, modulePrefix+imp.module+"/") {
		// Another module is reachable only through its inbound port and
		// DTOs, and only from an outbound adapter.
		if !touches(imp.path, "port/in", "dto") {
			return "cross-module access must go through port/in or dto"
		}
		if imp.layer != "adapter/out" {
			return "only outbound adapters may call other modules"
		}
		return ""
	}

	switch imp.layer {
	case "adapter/in":
		if !touches(imp.path, "port/in", "dto") {
			return "inbound adapters see only port/in and dto"
		}
	case "usecase":
		if touches(imp.path, "adapter") {
			return "usecases must not know adapters"
		}
	case "service":
		if touches(imp.path, "adapter", "usecase") {
			return "services must not know adapters or usecases"
		}
	case "domain":
		if touches(imp.path, "adapter", "usecase", "service", "port/out") {
			return "domain must stay pure"
		}
	}
	return ""
}
