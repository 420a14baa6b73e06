package export

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/builddost/builddost-api/internal/models"
)

// importPattern matches one (possibly multi-line) ES import statement.
var importPattern = regexp.MustCompile(`(?m)^[ \t]*import\s+([^;"']+?)\s+from\s+["']([^"']+)["'];?[ \t]*\n?`)

type packageJSON struct {
	Name            string            `json:"name"`
	Private         bool              `json:"private"`
	Version         string            `json:"version"`
	Type            string            `json:"type"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// BuildTemplateBundle wraps a template's source in a standalone Vite +
// React + Tailwind project with no imports from the host app.
func BuildTemplateBundle(template *models.Template) (*Bundle, error) {
	slug := Slug(template.Name)

	source := template.SourceCode
	if strings.TrimSpace(source) == "" {
		source = fmt.Sprintf("export default function App() {\n  return <h1 className=\"p-8 text-3xl font-bold\">%s</h1>;\n}\n", template.Name)
	}
	app, modules := standaloneApp(source)

	dependencies := map[string]string{
		"react":     "^18.3.1",
		"react-dom": "^18.3.1",
	}
	for _, module := range modules {
		if name := packageName(module); name != "" && dependencies[name] == "" {
			dependencies[name] = "latest"
		}
	}

	pkg, err := json.MarshalIndent(packageJSON{
		Name:    slug,
		Private: true,
		Version: "0.1.0",
		Type:    "module",
		Scripts: map[string]string{
			"dev":     "vite",
			"build":   "tsc && vite build",
			"preview": "vite preview",
		},
		Dependencies: dependencies,
		DevDependencies: map[string]string{
			"@types/react":         "^18.3.3",
			"@types/react-dom":     "^18.3.0",
			"@vitejs/plugin-react": "^4.3.1",
			"autoprefixer":         "^10.4.19",
			"postcss":              "^8.4.39",
			"tailwindcss":          "^3.4.6",
			"typescript":           "^5.5.3",
			"vite":                 "^5.3.4",
		},
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: package.json: %w", ErrExport, err)
	}

	b := NewBundle(template.Name)
	files := []File{
		{"package.json", string(pkg) + "\n"},
		{"index.html", indexHTML(template.Name)},
		{"vite.config.ts", viteConfig},
		{"tailwind.config.js", tailwindConfig},
		{"postcss.config.js", postcssConfig},
		{"tsconfig.json", tsconfig},
		{"README.md", templateReadme(template)},
		{".gitignore", gitignore},
		{"src/main.tsx", mainTSX},
		{"src/index.css", indexCSS},
		{"src/App.tsx", app},
	}
	for _, f := range files {
		if err := b.Add(f.Path, f.Content); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// StandaloneApp removes "@/" alias and lucide-react imports from source and
// defines local stand-ins for every name they imported.
func StandaloneApp(source string) string {
	app, _ := standaloneApp(source)
	return app
}

// standaloneApp is StandaloneApp that also reports the module specifiers of
// the imports it kept, in source order.
func standaloneApp(source string) (string, []string) {
	var (
		kept     []string
		modules  []string
		names    []string
		seen     = map[string]bool{}
		iconsSet = map[string]bool{}
	)

	body := importPattern.ReplaceAllStringFunc(source, func(stmt string) string {
		m := importPattern.FindStringSubmatch(stmt)
		clause, module := m[1], m[2]
		if !strings.HasPrefix(module, "@/") && module != "lucide-react" {
			kept = append(kept, strings.TrimRight(stmt, "\n"))
			modules = append(modules, module)
			return ""
		}
		for _, name := range importedNames(clause) {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
			if module == "lucide-react" {
				iconsSet[name] = true
			}
		}
		return ""
	})

	var out strings.Builder
	for _, stmt := range kept {
		out.WriteString(stmt)
		out.WriteByte('\n')
	}
	if len(names) > 0 {
		if len(kept) > 0 {
			out.WriteByte('\n')
		}
		for _, name := range names {
			out.WriteString(standIn(name, iconsSet[name]))
			out.WriteByte('\n')
		}
	}
	if out.Len() > 0 {
		out.WriteByte('\n')
	}
	out.WriteString(strings.TrimLeft(body, "\n"))
	return out.String(), modules
}

// packageName returns the npm package an import specifier resolves to, or ""
// for relative paths and Node builtins. "@scope/pkg/sub" yields "@scope/pkg".
func packageName(module string) string {
	if module == "" || strings.HasPrefix(module, ".") || strings.HasPrefix(module, "/") || strings.HasPrefix(module, "node:") {
		return ""
	}
	parts := strings.Split(module, "/")
	if strings.HasPrefix(module, "@") {
		if len(parts) < 2 || parts[1] == "" {
			return ""
		}
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// importedNames returns the local binding names of an import clause such as
// `React, { useState as useLocal }` or `* as Icons`.
func importedNames(clause string) []string {
	clause = strings.NewReplacer("{", ",", "}", ",", "\n", " ").Replace(clause)

	var names []string
	for _, part := range strings.Split(clause, ",") {
		part = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "type "))
		if part == "" {
			continue
		}
		if i := strings.LastIndex(part, " as "); i >= 0 {
			part = strings.TrimSpace(part[i+len(" as "):])
		}
		if part == "*" || part == "" {
			continue
		}
		names = append(names, part)
	}
	return names
}

func standIn(name string, icon bool) string {
	switch {
	case icon || strings.HasSuffix(name, "Icon"):
		return fmt.Sprintf(`function %s({ className = "", size = 24, ...props }: any) {
  return (
    <svg viewBox="0 0 24 24" width={size} height={size} fill="none" stroke="currentColor" strokeWidth={2} className={className} {...props}>
      <circle cx="12" cy="12" r="9" />
    </svg>
  );
}
`, name)
	case name == "Button":
		return `function Button({ className = "", variant, size, asChild, ...props }: any) {
  const tone = variant === "outline" ? "border border-slate-300 bg-white text-slate-900 hover:bg-slate-50" : "bg-slate-900 text-white hover:bg-slate-700";
  const scale = size === "lg" ? "px-6 py-3 text-base" : size === "sm" ? "px-3 py-1.5 text-xs" : "px-4 py-2 text-sm";
  return <button className={"inline-flex items-center justify-center rounded-md font-medium transition-colors " + tone + " " + scale + " " + className} {...props} />;
}
`
	case name == "Badge":
		return `function Badge({ className = "", variant, ...props }: any) {
  return <span className={"inline-flex items-center rounded-full bg-slate-100 px-2.5 py-0.5 text-xs font-semibold text-slate-800 " + className} {...props} />;
}
`
	default:
		return fmt.Sprintf(`function %s({ className = "", children, ...props }: any) {
  return <div className={className} {...props}>{children}</div>;
}
`, name)
	}
}

func templateReadme(t *models.Template) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Name)
	if t.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", t.Description)
	}
	if t.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n\n", t.Category)
	}
	b.WriteString("Exported from BuildDost.\n\n")
	b.WriteString("## Getting started\n\n```bash\nnpm install\nnpm run dev\n```\n\n")
	b.WriteString("Build for production with `npm run build`.\n")
	return b.String()
}

func indexHTML(title string) string {
	return fmt.Sprintf(`<!doctype html>
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
`, title)
}

const viteConfig = `import { defineConfig } from "vite";
import react from "@vitejs/plugin-react";

export default defineConfig({
  plugins: [react()],
});
`

const tailwindConfig = `/** @type {import('tailwindcss').Config} */
export default {
  content: ["./index.html", "./src/**/*.{js,ts,jsx,tsx}"],
  theme: {
    extend: {},
  },
  plugins: [],
};
`

const postcssConfig = `export default {
  plugins: {
    tailwindcss: {},
    autoprefixer: {},
  },
};
`

const tsconfig = `{
  "compilerOptions": {
    "target": "ES2020",
    "lib": ["ES2020", "DOM", "DOM.Iterable"],
    "module": "ESNext",
    "moduleResolution": "bundler",
    "jsx": "react-jsx",
    "strict": true,
    "skipLibCheck": true,
    "noEmit": true,
    "isolatedModules": true
  },
  "include": ["src"]
}
`

const gitignore = `node_modules
dist
.env
.env.local
*.log
.DS_Store
`

const mainTSX = `import React from "react";
import ReactDOM from "react-dom/client";
import App from "./App";
import "./index.css";

ReactDOM.createRoot(document.getElementById("root")!).render(
  <React.StrictMode>
    <App />
  </React.StrictMode>
);
`

const indexCSS = `@tailwind base;
@tailwind components;
@tailwind utilities;
`
