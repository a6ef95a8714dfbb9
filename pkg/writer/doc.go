// Package writer implements scoped atomic file publishing.
//
// The single entry point is Write: it provisions the destination's parent
// directory chain, creates a private staging directory next to the
// destination, hands the caller a staging path to write to, and publishes the
// staged file with an atomic rename only if the caller's callback returns
// without error. The staging directory is removed on every exit path, so no
// temporary state survives the operation.
//
// Atomicity is guaranteed only for the final publish step. Ancestor directory
// creation is best-effort and idempotent; directories created by the
// operation receive the configured permissions and ownership, pre-existing
// ones are never touched.
package writer
