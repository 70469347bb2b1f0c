package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePrefix = "gothere/internal/modules/"

// sourceImports maps every non-test Go file under root to the gothere
// imports it declares.
func sourceImports(t *testing.T, root string) map[string][]string {
	t.Helper()
	fset := token.NewFileSet()
	out := map[string][]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		slash := filepath.ToSlash(path)
		out[slash] = []string{}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if strings.HasPrefix(importPath, "gothere/") {
				out[slash] = append(out[slash], importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	if len(out) == 0 {
		t.Fatalf("no sources found under %s", root)
	}
	return out
}

func TestModuleLayerImports(t *testing.T) {
	t.Parallel()
	for path, imports := range sourceImports(t, filepath.Join("..", "modules")) {
		module := moduleName(path)
		layer := detectLayer(path)
		if module == "" || layer == "" {
			continue
		}
		for _, importPath := range imports {
			if !strings.HasPrefix(importPath, modulePrefix) {
				continue
			}
			if violatesLayerRule(module, layer, importPath) {
				t.Fatalf("forbidden import in %s (%s): %s", path, layer, importPath)
			}
		}
	}
}

func TestDomainsImportNoOtherModule(t *testing.T) {
	t.Parallel()
	for path, imports := range sourceImports(t, filepath.Join("..", "modules")) {
		if detectLayer(path) != "domain" {
			continue
		}
		for _, importPath := range imports {
			if crossesDomainBoundary(moduleName(path), importPath) {
				t.Fatalf("domain %s reaches into another module: %s", path, importPath)
			}
		}
	}
}

func TestUIImportsOnlyModulePorts(t *testing.T) {
	t.Parallel()
	for path, imports := range sourceImports(t, filepath.Join("..", "ui")) {
		for _, importPath := range imports {
			if violatesUIRule(importPath) {
				t.Fatalf("ui file %s imports %s; only module port/in and dto are allowed", path, importPath)
			}
		}
	}
}

func TestRulesRejectKnownViolations(t *testing.T) {
	t.Parallel()
	layerCases := []struct {
		module, layer, importPath string
		want                      bool
	}{
		{"progress", "usecase", modulePrefix + "catalog/port/in", false},
		{"progress", "usecase", modulePrefix + "catalog/service", true},
		{"progress", "service", modulePrefix + "progress/adapter/out", true},
		{"progress", "adapter/in", modulePrefix + "progress/domain", true},
		{"progress", "adapter/out", modulePrefix + "progress/port/out", false},
		{"catalog", "domain", modulePrefix + "catalog/usecase", true},
	}
	for _, tc := range layerCases {
		if got := violatesLayerRule(tc.module, tc.layer, tc.importPath); got != tc.want {
			t.Fatalf("layer rule %s/%s -> %s: got %v want %v", tc.module, tc.layer, tc.importPath, got, tc.want)
		}
	}

	domainCases := []struct {
		module, importPath string
		want               bool
	}{
		{"progress", modulePrefix + "catalog/domain", true},
		{"progress", modulePrefix + "catalog/dto", true},
		{"progress", modulePrefix + "progress/domain", false},
		{"progress", "gothere/internal/platform/errors", false},
	}
	for _, tc := range domainCases {
		if got := crossesDomainBoundary(tc.module, tc.importPath); got != tc.want {
			t.Fatalf("domain rule %s -> %s: got %v want %v", tc.module, tc.importPath, got, tc.want)
		}
	}

	uiCases := []struct {
		importPath string
		want       bool
	}{
		{modulePrefix + "progress/dto", false},
		{modulePrefix + "catalog/port/in", false},
		{modulePrefix + "progress/domain", true},
		{modulePrefix + "progress/adapter/in", true},
		{modulePrefix + "catalog/usecase", true},
		{"gothere/internal/bootstrap", true},
		{"gothere/internal/ui/theme", false},
	}
	for _, tc := range uiCases {
		if got := violatesUIRule(tc.importPath); got != tc.want {
			t.Fatalf("ui rule %s: got %v want %v", tc.importPath, got, tc.want)
		}
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") || strings.HasSuffix(path, "/"+layer) {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

func violatesLayerRule(module, layer, importPath string) bool {
	sameModule := strings.HasPrefix(importPath, modulePrefix+module+"/")
	if !sameModule {
		return !isPortIn(importPath) && !isDTO(importPath)
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return strings.Contains(importPath, "/adapter/")
	case "service":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase")
	case "domain":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase") || strings.Contains(importPath, "/service")
	default:
		return false
	}
}

// crossesDomainBoundary reports a domain import of any package owned by a
// different module, ports and dtos included.
func crossesDomainBoundary(module, importPath string) bool {
	if !strings.HasPrefix(importPath, modulePrefix) {
		return false
	}
	return moduleName(importPath) != module
}

// violatesUIRule keeps the TUI on the inbound ports: it may read module
// dtos and port/in contracts but never domain, service or adapter code,
// and never the composition root.
func violatesUIRule(importPath string) bool {
	if strings.HasPrefix(importPath, "gothere/internal/bootstrap") {
		return true
	}
	if !strings.HasPrefix(importPath, modulePrefix) {
		return false
	}
	return !isPortIn(importPath) && !isDTO(importPath)
}
