package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	fset := token.NewFileSet()
	root := filepath.Join("..", "modules")
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		slash := filepath.ToSlash(path)
		module := moduleName(slash)
		layer := detectLayer(slash)
		if module == "" || layer == "" {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if !strings.Contains(importPath, "gocycling/internal/modules/") {
				continue
			}
			if violatesLayerRule(module, layer, importPath) {
				t.Fatalf("forbidden import in %s (%s): %s", slash, layer, importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk modules: %v", err)
	}
}

func TestLayerRules(t *testing.T) {
	t.Parallel()
	cases := []struct {
		module, layer, importPath string
		forbidden                 bool
	}{
		{"ride", "adapter/out", "gocycling/internal/modules/history/port/in", false},
		{"ride", "adapter/out", "gocycling/internal/modules/history/service", true},
		{"ride", "adapter/in", "gocycling/internal/modules/ride/domain", true},
		{"ride", "usecase", "gocycling/internal/modules/ride/adapter/out", true},
		{"history", "usecase", "gocycling/internal/modules/preferences/port/in", false},
		{"preferences", "domain", "gocycling/internal/modules/history/domain", false},
		{"ride", "port/out", "gocycling/internal/modules/ride/service", true},
	}
	for _, tc := range cases {
		if got := violatesLayerRule(tc.module, tc.layer, tc.importPath); got != tc.forbidden {
			t.Fatalf("%s/%s importing %s: forbidden=%v, want %v", tc.module, tc.layer, tc.importPath, got, tc.forbidden)
		}
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func hasSegment(path, segment string) bool {
	return strings.Contains(path, "/"+segment+"/") || strings.HasSuffix(path, "/"+segment)
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

func violatesLayerRule(module, layer, importPath string) bool {
	sameModule := strings.Contains(importPath, "/internal/modules/"+module+"/")
	if !sameModule {
		if hasSegment(importPath, "service") || hasSegment(importPath, "adapter") || hasSegment(importPath, "usecase") {
			return true
		}
		if isPortIn(importPath) || isDTO(importPath) {
			return false
		}
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return hasSegment(importPath, "adapter")
	case "service":
		return hasSegment(importPath, "adapter") || hasSegment(importPath, "usecase")
	case "domain", "port/in", "port/out", "dto":
		return hasSegment(importPath, "adapter") || hasSegment(importPath, "usecase") || hasSegment(importPath, "service")
	default:
		return false
	}
}
