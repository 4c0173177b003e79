// Package steps provides the resource steps a template deployment pipeline
// is assembled from: bucket creation, data upload, knowledge base and agent
// creation, readiness waits, function namespace setup, package deployment,
// and tool attachment.
//
// Each constructor returns a provisioning.Step with its prerequisites
// declared, so a template decides only which steps it needs and in what
// order.
package steps
