// Package services implements the driving port interfaces.
// Services contain the core pipeline logic and orchestrate
// calls to driven ports (adapters).
//
// The package depends on the domain, the ports and small pure
// helpers only; network and filesystem access stay behind ports.
package services
