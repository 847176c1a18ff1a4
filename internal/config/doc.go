// Package config defines the format-agnostic benchmark configuration model
// and the interfaces (Loader, Converter) for loading and interpreting it.
//
// Concrete implementations of the interfaces, such as for HCL, are provided
// in separate packages.
package config
