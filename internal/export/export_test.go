package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/builddost/builddost-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

const landingSource = `import { useState } from "react";
import { Button } from "@/components/ui/button";
import { Badge } from "@/components/ui/badge";
import {
  Card,
  CardContent as Body,
} from "@/components/ui/card";
import { Star, ArrowRight } from "lucide-react";

export default function Landing() {
  const [count, setCount] = useState(0);
  return (
    <Card>
      <Body>
        <Badge>New</Badge>
        <Star />
        <Button onClick={() => setCount(count + 1)}>Clicked {count}</Button>
        <ArrowRight />
      </Body>
    </Card>
  );
}
`

func TestBundle_AddRejectsDuplicatePaths(t *testing.T) {
	b := NewBundle("demo")
	require.NoError(t, b.Add("src/App.tsx", "a"))

	err := b.Add("./src/App.tsx", "b")
	assert.ErrorIs(t, err, ErrDuplicatePath)
	assert.ErrorIs(t, err, ErrExport)

	content, ok := b.Get("src/App.tsx")
	assert.True(t, ok)
	assert.Equal(t, "a", content)
	assert.Equal(t, 1, b.Len())
}

func TestBundle_AddRejectsEscapingPaths(t *testing.T) {
	b := NewBundle("demo")
	for _, p := range []string{"", "/etc/passwd", "../secret", "a/../../b", "."} {
		assert.ErrorIs(t, b.Add(p, "x"), ErrInvalidPath, p)
	}
	assert.Zero(t, b.Len())
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "food-delivery-login", Slug("Food Delivery  Login!"))
	assert.Equal(t, "project", Slug("  ***  "))
	assert.Equal(t, "caf", Slug("Café"))
}

func TestBuildTemplateBundle(t *testing.T) {
	template := &models.Template{
		Name:        "Startup Landing",
		Description: "A landing page",
		Category:    models.TemplateCategoryLanding,
		SourceCode:  landingSource,
	}

	b, err := BuildTemplateBundle(template)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"package.json",
		"index.html",
		"vite.config.ts",
		"tailwind.config.js",
		"postcss.config.js",
		"tsconfig.json",
		"README.md",
		".gitignore",
		"src/main.tsx",
		"src/index.css",
		"src/App.tsx",
	}, b.Paths())

	pkg, _ := b.Get("package.json")
	assert.Contains(t, pkg, `"name": "startup-landing"`)

	readme, _ := b.Get("README.md")
	assert.Contains(t, readme, "# Startup Landing")

	app, _ := b.Get("src/App.tsx")
	assert.NotContains(t, app, "@/")
	assert.NotContains(t, app, "lucide-react")
	assert.Contains(t, app, `import { useState } from "react";`)
	for _, name := range []string{"Button", "Badge", "Card", "Body", "Star", "ArrowRight"} {
		assert.Contains(t, app, "function "+name+"(", name)
	}
	assert.Contains(t, app, "export default function Landing()")
	assert.NotContains(t, app, "CardContent")
}

func TestBuildTemplateBundle_WithoutSource(t *testing.T) {
	b, err := BuildTemplateBundle(&models.Template{Name: "Blank"})
	require.NoError(t, err)

	app, ok := b.Get("src/App.tsx")
	require.True(t, ok)
	assert.Contains(t, app, "export default function App()")
	assert.Contains(t, app, "Blank")
}

func TestStandaloneApp_LeavesPlainSourceAlone(t *testing.T) {
	source := "import React from \"react\";\n\nexport default function App() {\n  return <p>hi</p>;\n}\n"
	assert.Equal(t, source, StandaloneApp(source))
}

func TestBuildTemplateBundle_DeclaresKeptImports(t *testing.T) {
	source := `import { useState } from "react";
import { BrowserRouter, Route } from "react-router-dom";
import { motion } from "framer-motion";
import { format } from "date-fns/format";
import { useQuery } from "@tanstack/react-query";
import { Button } from "@/components/ui/button";
import { Star } from "lucide-react";
import { helper } from "./helper";

export default function App() {
  return <BrowserRouter><Button><Star /></Button></BrowserRouter>;
}
`
	b, err := BuildTemplateBundle(&models.Template{Name: "Router App", SourceCode: source})
	require.NoError(t, err)

	raw, ok := b.Get("package.json")
	require.True(t, ok)
	var pkg packageJSON
	require.NoError(t, json.Unmarshal([]byte(raw), &pkg))

	assert.Equal(t, map[string]string{
		"react":                 "^18.3.1",
		"react-dom":             "^18.3.1",
		"react-router-dom":      "latest",
		"framer-motion":         "latest",
		"date-fns":              "latest",
		"@tanstack/react-query": "latest",
	}, pkg.Dependencies)

	app, _ := b.Get("src/App.tsx")
	assert.Contains(t, app, `import { BrowserRouter, Route } from "react-router-dom";`)
}

func TestPackageName(t *testing.T) {
	cases := map[string]string{
		"react-router-dom":        "react-router-dom",
		"date-fns/format":         "date-fns",
		"@tanstack/react-query":   "@tanstack/react-query",
		"@radix-ui/react-icons/x": "@radix-ui/react-icons",
		"./helper":                "",
		"../lib/util":             "",
		"node:path":               "",
		"@broken":                 "",
	}
	for module, want := range cases {
		assert.Equal(t, want, packageName(module), module)
	}
}

func TestBuildProjectBundle_SortedPassThrough(t *testing.T) {
	files := map[string]string{
		"frontend/src/main.tsx": "main",
		"backend/server.js":     "server",
		"frontend/index.html":   "html",
	}
	project := &models.Project{
		Name:   "Food Delivery",
		Config: datatypes.NewJSONType(models.ProjectConfig{Files: files}),
	}

	b, err := BuildProjectBundle(project)
	require.NoError(t, err)

	assert.Equal(t, []string{"backend/server.js", "frontend/index.html", "frontend/src/main.tsx"}, b.Paths())
	for p, content := range files {
		got, ok := b.Get(p)
		assert.True(t, ok)
		assert.Equal(t, content, got)
	}
	assert.Equal(t, "food-delivery.zip", ZipFilename(b))
}

func TestWriteZip(t *testing.T) {
	b := NewBundle("demo")
	require.NoError(t, b.Add("b.txt", "second"))
	require.NoError(t, b.Add("a/a.txt", "first"))

	var buf bytes.Buffer
	require.NoError(t, WriteZip(&buf, b))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "b.txt", zr.File[0].Name)
	assert.Equal(t, "a/a.txt", zr.File[1].Name)

	rc, err := zr.File[1].Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	var again bytes.Buffer
	require.NoError(t, WriteZip(&again, b))
	assert.Equal(t, buf.Bytes(), again.Bytes())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteZip_PropagatesWriterErrors(t *testing.T) {
	b := NewBundle("demo")
	require.NoError(t, b.Add("a.txt", "x"))

	assert.ErrorIs(t, WriteZip(failingWriter{}, b), ErrExport)
}

func TestStubGitHubExporter(t *testing.T) {
	exporter := NewStubGitHubExporter("")
	b := NewBundle("Startup Landing")
	require.NoError(t, b.Add("index.html", "x"))

	res, err := exporter.Publish(context.Background(), "", b)
	require.NoError(t, err)
	assert.Equal(t, "builddost/startup-landing", res.Repository)
	assert.Equal(t, "https://github.com/builddost/startup-landing", res.RepositoryURL)
	assert.Equal(t, 1, res.Files)

	res, err = exporter.Publish(context.Background(), "me/site", b)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/me/site", res.RepositoryURL)

	_, err = exporter.Publish(context.Background(), "bad name!", b)
	assert.ErrorIs(t, err, ErrInvalidRepository)
}
