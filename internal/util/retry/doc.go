// Package retry provides exponential backoff retry logic for transient failures.
//
// [WithExponentialBackoff] retries an operation with configurable max
// attempts, initial delay, and maximum delay. It is used for cloud API calls
// and doctl invocations that may fail transiently, e.g. connecting to a
// function namespace right after creation.
package retry
