// Package provisioning provides shared types, interfaces, and orchestration
// for deploying agent templates.
//
// # Subpackages
//
//   - steps/ creates Spaces buckets, knowledge bases, agents, and function
//     namespaces
//
// # Core Types
//
// Context carries configuration, accumulated step results, platform clients,
// and the observer. Step defines one named unit of resource creation with
// statically declared prerequisites. Pipeline runs steps in order, threads
// results between them, and releases ephemeral credentials on exit.
package provisioning
