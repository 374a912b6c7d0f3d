// Package orchestrator wires the prompt -> registry fetch -> manifest build ->
// driver merge pipeline, downloading the product image alongside the build.
// Every collaborator can be injected for tests or alternative registries.
package orchestrator
