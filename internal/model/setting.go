package model

// Setting is one named configuration value.
type Setting struct {
	Name  string
	Value string
}
