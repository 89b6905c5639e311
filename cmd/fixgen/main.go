// fixo/fixgen/main.go
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"go/format"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
)

// FieldSpec describes one position of a fixture's shape.
//
// Kinds:
//   - "string" | "int" | "float" | "bool": literal default, taken from Value
//   - "sequence": incrementing counter; Prefix makes it a string sequence
//   - "uuid": random UUID string per generation
//   - "now": generation timestamp
//   - "object": nested shape, described by Fields
type FieldSpec struct {
	Name   string      `json:"name"`
	Kind   string      `json:"kind"`
	Value  any         `json:"value"`
	Prefix string      `json:"prefix"`
	Fields []FieldSpec `json:"fields"`
}

type TraitSpec struct {
	Name   string      `json:"name"`
	Fields []FieldSpec `json:"fields"`
}

type FixtureSpec struct {
	Name   string      `json:"name"`
	Fields []FieldSpec `json:"fields"`
	Traits []TraitSpec `json:"traits"`
}

type Imports struct {
	// Fixture overrides the import path of the fixture runtime package.
	// Defaults to the canonical path; set it if you vendor or fork.
	Fixture string `json:"fixture"`
}

type GenSpec struct {
	Package  string        `json:"package"`
	Imports  Imports       `json:"imports"`
	Fixtures []FixtureSpec `json:"fixtures"`
}

const defaultFixtureImport = "github.com/sghaida/fixo/fixture"

func run(args []string) error {
	fs := flag.NewFlagSet("fixgen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	specPath := fs.String("spec", "", "path to fixtures spec JSON")
	outPath := fs.String("out", "", "output .gen.go file path")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(*specPath) == "" {
		return fmt.Errorf("missing -spec")
	}
	if strings.TrimSpace(*outPath) == "" {
		return fmt.Errorf("missing -out")
	}

	gen(*specPath, *outPath)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		// keep failures loud: fixgen runs under go:generate
		panic(err)
	}
}

func gen(specPath, outPath string) {
	raw := mustRead(specPath)

	var spec GenSpec
	must(json.Unmarshal(raw, &spec))

	applySpecDefaults(&spec)
	validateSpec(&spec)

	// deterministic ordering (hygiene)
	sort.Slice(spec.Fixtures, func(i, j int) bool { return spec.Fixtures[i].Name < spec.Fixtures[j].Name })
	for i := range spec.Fixtures {
		sortFields(spec.Fixtures[i].Fields)
		sort.Slice(spec.Fixtures[i].Traits, func(a, b int) bool {
			return spec.Fixtures[i].Traits[a].Name < spec.Fixtures[i].Traits[b].Name
		})
		for t := range spec.Fixtures[i].Traits {
			sortFields(spec.Fixtures[i].Traits[t].Fields)
		}
	}

	type renderedTrait struct {
		Name string
		Expr string
	}
	type renderedFixture struct {
		Name   string
		Expr   string
		Traits []renderedTrait
	}

	fixtures := make([]renderedFixture, 0, len(spec.Fixtures))
	for _, fx := range spec.Fixtures {
		rf := renderedFixture{
			Name: fx.Name,
			Expr: treeExpr("fixture.Definition", fx.Fields, 1),
		}
		for _, tr := range fx.Traits {
			rf.Traits = append(rf.Traits, renderedTrait{
				Name: tr.Name,
				Expr: treeExpr("fixture.Override", tr.Fields, 2),
			})
		}
		fixtures = append(fixtures, rf)
	}

	data := map[string]any{
		"Package":       spec.Package,
		"FixtureImport": spec.Imports.Fixture,
		"SpecPath":      filepath.ToSlash(specPath),
		"SpecHash":      sha256Hex(raw),
		"Fixtures":      fixtures,
	}

	src := mustExecTemplate(fixturesTpl, data)
	writeFormatted(outPath, src)
}

func sortFields(fields []FieldSpec) {
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	for i := range fields {
		sortFields(fields[i].Fields)
	}
}

func applySpecDefaults(s *GenSpec) {
	if s == nil {
		return
	}
	if strings.TrimSpace(s.Imports.Fixture) == "" {
		s.Imports.Fixture = defaultFixtureImport
	}
}

func validateSpec(s *GenSpec) {
	if strings.TrimSpace(s.Package) == "" {
		die("spec missing: package")
	}
	if len(s.Fixtures) == 0 {
		die("spec fixtures must be non-empty")
	}

	seen := map[string]bool{}
	for _, fx := range s.Fixtures {
		if strings.TrimSpace(fx.Name) == "" {
			die("fixture must have name")
		}
		if seen[fx.Name] {
			die("duplicate fixture name " + strconv.Quote(fx.Name))
		}
		seen[fx.Name] = true

		if len(fx.Fields) == 0 {
			die("fixture " + strconv.Quote(fx.Name) + " must have fields")
		}
		validateFields(fx.Name, fx.Fields)

		traitSeen := map[string]bool{}
		for _, tr := range fx.Traits {
			if strings.TrimSpace(tr.Name) == "" {
				die("fixture " + strconv.Quote(fx.Name) + " trait must have name")
			}
			if traitSeen[tr.Name] {
				die("fixture " + strconv.Quote(fx.Name) + " has duplicate trait " + strconv.Quote(tr.Name))
			}
			traitSeen[tr.Name] = true
			if len(tr.Fields) == 0 {
				die("trait " + strconv.Quote(tr.Name) + " must have fields")
			}
			validateFields(fx.Name+"."+tr.Name, tr.Fields)
		}
	}
}

func validateFields(owner string, fields []FieldSpec) {
	seen := map[string]bool{}
	for _, f := range fields {
		if strings.TrimSpace(f.Name) == "" {
			die(owner + ": field must have name")
		}
		if seen[f.Name] {
			die(owner + ": duplicate field " + strconv.Quote(f.Name))
		}
		seen[f.Name] = true

		at := owner + "." + f.Name
		switch f.Kind {
		case "string":
			if _, ok := f.Value.(string); !ok {
				die(at + ": string field needs a string value")
			}
		case "int":
			v, ok := f.Value.(float64)
			if !ok || v != math.Trunc(v) {
				die(at + ": int field needs an integer value")
			}
		case "float":
			if _, ok := f.Value.(float64); !ok {
				die(at + ": float field needs a number value")
			}
		case "bool":
			if _, ok := f.Value.(bool); !ok {
				die(at + ": bool field needs a boolean value")
			}
		case "sequence", "uuid", "now":
			if f.Value != nil {
				die(at + ": " + f.Kind + " field takes no value")
			}
		case "object":
			if len(f.Fields) == 0 {
				die(at + ": object field needs nested fields")
			}
			validateFields(at, f.Fields)
		default:
			die(at + ": unknown kind " + strconv.Quote(f.Kind))
		}
	}
}

// treeExpr renders a fixture.Definition / fixture.Override composite literal
// for the field list, indented for the given nesting depth. Output is only
// roughly indented; go/format settles the final layout.
func treeExpr(litType string, fields []FieldSpec, depth int) string {
	indent := strings.Repeat("\t", depth)
	var sb strings.Builder
	sb.WriteString(litType + "{\n")
	for _, f := range fields {
		sb.WriteString(indent + "\t" + strconv.Quote(f.Name) + ": " + fieldExpr(f, depth+1) + ",\n")
	}
	sb.WriteString(indent + "}")
	return sb.String()
}

func fieldExpr(f FieldSpec, depth int) string {
	switch f.Kind {
	case "string":
		return strconv.Quote(f.Value.(string))
	case "int":
		return strconv.Itoa(int(f.Value.(float64)))
	case "float":
		return floatExpr(f.Value.(float64))
	case "bool":
		return strconv.FormatBool(f.Value.(bool))
	case "sequence":
		if f.Prefix != "" {
			return "fixture.SequenceString(" + strconv.Quote(f.Prefix) + ")"
		}
		return "fixture.Sequence()"
	case "uuid":
		return "fixture.UUID()"
	case "now":
		return "fixture.Now()"
	case "object":
		return treeExpr("fixture.Definition", f.Fields, depth)
	default:
		die("unreachable kind " + strconv.Quote(f.Kind))
		return ""
	}
}

// floatExpr renders a float64 so the literal stays a float in Go source
// (a bare "1" in a map literal would become an int).
func floatExpr(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// -------------------------
// Misc helpers
// -------------------------

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func mustRead(path string) []byte {
	b, err := os.ReadFile(path)
	must(err)
	return b
}

func mustExecTemplate(tpl *template.Template, data any) []byte {
	var sb strings.Builder
	must(tpl.Execute(&sb, data))
	return []byte(sb.String())
}

func writeFormatted(out string, src []byte) {
	fmtSrc, err := format.Source(src)
	if err != nil {
		_ = os.WriteFile(out, src, 0o644)
		die("gofmt/format failed: " + err.Error())
	}
	must(os.WriteFile(out, fmtSrc, 0o644))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func die(msg string) {
	panic(msg)
}

// -------------------------
// Templates
// -------------------------

var fixturesTpl = template.Must(
	template.New("fixtures").Parse(`// Code generated by fixgen; DO NOT EDIT.
// Spec: {{.SpecPath}}
// Spec-SHA256: {{.SpecHash}}

package {{.Package}}

import (
	fixture "{{.FixtureImport}}"
)
{{ range .Fixtures }}
// New{{.Name}}Factory builds the default {{.Name}} fixture factory.
func New{{.Name}}Factory() *fixture.Factory {
	return fixture.New({{.Expr}})
{{- range .Traits }}.
		Trait("{{.Name}}", {{.Expr}})
{{- end }}
}
{{ end }}`))
