// Package common provides shared types and utilities for UI features.
package common

// SessionName is the cookie session shared by the UI features.
const SessionName = "adminshell"

// viewportWidthKey stores the last viewport width a browser reported.
// It only seeds the first paint of the next mount; layout state itself is
// never persisted.
const viewportWidthKey = "viewport_width"
