// Package geo resolves coordinates to countries. Countries are stored as
// bounding boxes; Repository reads them through go-repository-bun and can be
// wrapped with the go-repository-cache decorator via WithCache.
package geo
