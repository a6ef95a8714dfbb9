// Package testutil provides filesystem assertion helpers shared by the
// atomicwriter test suites.
package testutil
