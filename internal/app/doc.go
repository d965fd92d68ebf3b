// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the calculation lifecycle: resolving the
// device, guiding the user through missing arguments, running the solver and
// printing the result, decoupled from any specific entrypoint like a CLI.
package app
