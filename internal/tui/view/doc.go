// Package view renders the sections of the bridge screen. Every function is
// pure: it takes plain data and a styles.Styles value and returns a string,
// so the model decides when a frame is built.
package view
