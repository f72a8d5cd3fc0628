// Command foodgen turns a plain "<emoji> <name>" food list into the Go table
// compiled into the catalog package. It depends only on foodlist, so it
// builds even when the generated table is missing or stale.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"log"
	"os"
	"path/filepath"
	"text/template"

	"chosenoffset.com/hungrypumpkin/internal/catalog/foodlist"
)

var tableTemplate = template.Must(template.New("table").Parse(`// Code generated by foodgen from {{.Source}}; DO NOT EDIT.

package {{.Package}}

var table = []Food{
{{- range .Foods}}
	{Symbol: {{printf "0x%X" .Symbol}}, Name: {{printf "%q" .Name}}}, // {{.}}
{{- end}}
}
`))

func main() {
	in := flag.String("in", "food_raw.txt", "food list to read")
	out := flag.String("out", "table.go", "Go file to write")
	pkg := flag.String("package", "catalog", "package name of the generated file")
	flag.Parse()

	src, err := generate(*in, *pkg)
	if err != nil {
		log.Fatalf("foodgen: %v", err)
	}
	if err := os.WriteFile(*out, src, 0644); err != nil {
		log.Fatalf("foodgen: failed to write %s: %v", *out, err)
	}
	log.Printf("foodgen: wrote %s", *out)
}

func generate(in, pkg string) ([]byte, error) {
	f, err := os.Open(in)
	if err != nil {
		return nil, fmt.Errorf("failed to open food list: %w", err)
	}
	defer f.Close()

	foods, err := foodlist.Parse(f)
	if err != nil {
		return nil, err
	}
	if len(foods) == 0 {
		return nil, foodlist.ErrEmpty
	}

	var buf bytes.Buffer
	err = tableTemplate.Execute(&buf, struct {
		Source  string
		Package string
		Foods   []foodlist.Food
	}{
		Source:  filepath.Base(in),
		Package: pkg,
		Foods:   foods,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render table: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format table: %w", err)
	}
	return src, nil
}
