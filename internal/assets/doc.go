// Package assets loads theme stylesheets and page templates for reports.
//
// Assets are grouped by Kind. A Kind names the directory and extension of
// its files, so every tree looks the same:
//
//	{root}/
//	├── styles/{name}.css       # Theme
//	└── templates/{name}.html   # Page template
//
// Embedded serves the tree compiled into the binary (themes "default" and
// "plain", template "report"). Dir serves a tree on disk and reads through
// os.Root, so neither names nor symlinks reach outside it. Layered combines
// the two: a custom Dir first, the embedded tree for anything it lacks.
package assets
