package generation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/builddost/builddost-api/internal/models"
)

// fieldDefault fills one top-level key of a model response when the key is
// missing or falsy. Defaults run in order, so later ones may read earlier keys.
type fieldDefault struct {
	key   string
	value func(obj map[string]any) any
}

func applyDefaults(obj map[string]any, defaults []fieldDefault) {
	for _, d := range defaults {
		if isFalsy(obj[d.key]) {
			obj[d.key] = d.value(obj)
		}
	}
}

// isFalsy treats null, blank strings, false and 0 as absent. Empty objects
// and arrays are kept as given.
func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case bool:
		return !t
	case float64:
		return t == 0
	}
	return false
}

var nameStopWords = map[string]bool{
	"a":           true,
	"an":          true,
	"the":         true,
	"for":         true,
	"with":        true,
	"app":         true,
	"website":     true,
	"application": true,
}

// nameTokens returns up to three title-cased words of description with stop
// words removed.
func nameTokens(description string) []string {
	words := strings.FieldsFunc(description, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, 3)
	for _, w := range words {
		if nameStopWords[strings.ToLower(w)] {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		tokens = append(tokens, string(unicode.ToUpper(r))+w[size:])
		if len(tokens) == 3 {
			break
		}
	}
	return tokens
}

// deriveName builds a display name such as "Food Delivery Login" from a
// free-form description.
func deriveName(description string) string {
	tokens := nameTokens(description)
	if len(tokens) == 0 {
		return "Generated Project"
	}
	return strings.Join(tokens, " ")
}

func deriveComponentName(description string) string {
	tokens := nameTokens(description)
	if len(tokens) == 0 {
		return "GeneratedComponent"
	}
	return strings.Join(tokens, "")
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func fullStackDefaults(description string, now time.Time) []fieldDefault {
	return []fieldDefault{
		{"id", func(map[string]any) any { return "project-" + strconv.FormatInt(now.UnixMilli(), 10) }},
		{"name", func(map[string]any) any { return deriveName(description) }},
		{"description", func(map[string]any) any { return description }},
		{"files", func(obj map[string]any) any {
			name := stringField(obj, "name")
			if name == "" {
				name = deriveName(description)
			}
			return skeletonFiles(name)
		}},
		{"structure", func(map[string]any) any { return skeletonStructure() }},
		{"dependencies", func(map[string]any) any {
			return models.ProjectDependencies{
				Frontend: []string{"react", "react-dom", "vite", "tailwindcss"},
				Backend:  []string{"express", "cors"},
			}
		}},
	}
}

func componentDefaults(description string) []fieldDefault {
	return []fieldDefault{
		{"name", func(map[string]any) any { return deriveComponentName(description) }},
		{"description", func(map[string]any) any { return description }},
		{"code", func(obj map[string]any) any {
			name := stringField(obj, "name")
			if name == "" {
				name = deriveComponentName(description)
			}
			return fmt.Sprintf("export default function %s() {\n  return <div className=\"p-4\">%s</div>;\n}\n", name, name)
		}},
		{"props", func(map[string]any) any { return map[string]any{} }},
		{"styling", func(map[string]any) any { return map[string]any{"framework": "tailwindcss"} }},
		{"dependencies", func(map[string]any) any { return []string{"react"} }},
	}
}

func backendDefaults(description, framework string) []fieldDefault {
	if framework == "" {
		framework = "express"
	}
	return []fieldDefault{
		{"name", func(map[string]any) any { return deriveName(description) }},
		{"description", func(map[string]any) any { return description }},
		{"files", func(map[string]any) any { return map[string]string{} }},
		{"routes", func(map[string]any) any { return []Route{} }},
		{"models", func(map[string]any) any { return []DataModel{} }},
		{"dependencies", func(map[string]any) any { return []string{framework} }},
	}
}

func optimizeDefaults(code string) []fieldDefault {
	return []fieldDefault{
		{"optimizedCode", func(map[string]any) any { return code }},
		{"improvements", func(map[string]any) any { return []string{} }},
		{"explanation", func(map[string]any) any { return "No changes were suggested." }},
	}
}

func skeletonStructure() models.ProjectStructure {
	return models.ProjectStructure{
		Frontend: []string{"frontend/index.html", "frontend/src/main.tsx", "frontend/src/App.tsx"},
		Backend:  []string{"backend/server.js"},
		Database: []string{"database/schema.sql"},
	}
}

func skeletonFiles(name string) map[string]string {
	return map[string]string{
		"frontend/index.html": fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>%s</title>
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="/src/main.tsx"></script>
  </body>
</html>
`, name),
		"frontend/src/main.tsx": `import React from "react";
import ReactDOM from "react-dom/client";
import App from "./App";

ReactDOM.createRoot(document.getElementById("root")!).render(
  <React.StrictMode>
    <App />
  </React.StrictMode>
);
`,
		"frontend/src/App.tsx": fmt.Sprintf(`export default function App() {
  return (
    <main className="min-h-screen flex items-center justify-center">
      <h1 className="text-3xl font-bold">%s</h1>
    </main>
  );
}
`, name),
		"backend/server.js": `const express = require("express");
const cors = require("cors");

const app = express();
app.use(cors());
app.use(express.json());

app.get("/api/health", (req, res) => res.json({ status: "ok" }));

const port = process.env.PORT || 3001;
app.listen(port, () => console.log("listening on " + port));
`,
		"database/schema.sql": "-- schema\n",
	}
}
