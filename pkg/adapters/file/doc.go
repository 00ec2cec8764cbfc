// Package file loads the guide configuration from disk and persists session
// progress as JSON files.
//
// A site file is YAML:
//
//	locations:
//	  - {id: A, x: 0.0, y: 0.0}
//	edges:
//	  - {from: A, to: B, weight: 1.0, level: 0}
//
// Language tables live in a directory as <code>.json or <code>.yaml files.
package file
