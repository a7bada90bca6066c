// Package registry tracks the connector tags and transform operations a
// pipeweld instance knows about, together with the opaque work references
// that end up on assembled stage descriptors.
//
// Handlers here are data, not behavior: registering a handler only makes it
// available as a Descriptor.Work reference. Nothing in this module or any
// other ever calls one.
package registry
