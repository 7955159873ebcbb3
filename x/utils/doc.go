// Package utils contains decorators that are shared by every application
// stack: logging, panic recovery, savepoints and result tagging.
package utils
