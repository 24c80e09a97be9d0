package ir

// ClassifierID identifies a class or type alias with package context.
// Nested classes use dotted names relative to their package, so the identity of
// Outer.Inner in package com.example is {Package: "com.example", Name: "Outer.Inner"}.
type ClassifierID struct {
	// Package is the fully qualified package name. Empty for builtin classifiers.
	Package string

	// Name is the dotted relative class or alias name within the package.
	Name string
}

// IsZero returns true if the identifier is empty.
func (id ClassifierID) IsZero() bool {
	return id.Package == "" && id.Name == ""
}

// String returns "package/Name", or just the name for builtin classifiers.
func (id ClassifierID) String() string {
	if id.Package == "" {
		return id.Name
	}
	return id.Package + "/" + id.Name
}
