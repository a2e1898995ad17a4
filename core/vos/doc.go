// Package vos holds the per-process state commands run against: the
// environment, working directory, standard streams and line input.
package vos
