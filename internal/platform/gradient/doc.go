// Package gradient wraps the DigitalOcean API surface used to provision
// GenAI agent templates: agents, knowledge bases, indexing jobs, search
// databases, Spaces keys, function namespaces, and project assignment.
//
// Interfaces are split per concern so steps can declare exactly what they
// need and tests can substitute fakes. RealClient implements all of them on
// top of godo; the gen-ai endpoints not yet covered by the SDK's typed
// services are called through godo's request machinery with the typed
// request structs in this package.
package gradient
