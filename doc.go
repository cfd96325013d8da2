// Package moore provides a declarative finite-state-machine (Moore
// machine) engine.
//
// The core code is in package 'core', and a command-line tool is in `cmd`.
//
// See https://github.com/Comcast/moore/blob/master/README.md for more.
package moore
