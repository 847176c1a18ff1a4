// Package registry provides the central "glue" for the kernel module system.
//
// The Registry maps the kernel type names used in configuration (e.g.
// "compute_bound") to the compiled Go code that decodes their arguments and
// builds them. During startup the registry is populated by modules and then
// validated against the loaded model, so a misspelt kernel type or argument
// is reported before any tile is allocated.
package registry
