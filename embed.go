package iconshelf

import "embed"

// EmbeddedAssets contains the browse page assets: app.js, style.css,
// favicon.svg
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
