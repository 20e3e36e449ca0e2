// Package loader provides view-loader sources beyond the in-process
// functions route.Single and route.Named accept directly. The S3
// source serves code-split view payloads from object storage.
package loader
