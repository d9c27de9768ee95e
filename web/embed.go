// Package web carries the UI assets compiled into the binary so the
// tracker ships as a single executable.
package web

import "embed"

// TemplatesFS holds the server-rendered HTML templates.
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds stylesheets and client-side scripts.
//go:embed static/*
var StaticFS embed.FS
