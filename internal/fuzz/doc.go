// Package fuzz builds the ffuf command line and runs ffuf as a child process.
package fuzz
