// Package utils provides common utility functions for the tablediff application.
// It includes helpers for type conversion and other shared logic that doesn't fit
// into domain-specific packages.
package utils
