// Package cli provides the interactive favfood command-line client.
//
// It wires configuration, the local session store, the API services and a
// REPL that stands in for the app's three screens: login, register and the
// home screen where the favorite-food profile is edited. Every submission
// (sign-in, registration, profile load and update, sign-out) goes through
// its own submit.Controller, so a failed call can be retried by hand with
// the same inputs and a second submission is ignored while one is running.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
