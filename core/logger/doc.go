// Package logger records shell events as newline delimited JSON and
// summarizes them.
package logger
