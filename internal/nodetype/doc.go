// Package nodetype provides the node-type catalogue: versioned,
// content-hashed singleton descriptors for each node behaviour.
//
// Registration is two-phase. Behaviour builders are registered while
// modules load; Finalize, called exactly once after every registration
// hook has run, instantiates each builder into a singleton Type, checks it
// against any HCL manifest, computes its content hash and freezes the
// catalogue. The deferral exists because a behaviour may reference entries
// contributed by other modules, which are only guaranteed present after
// all hooks have executed. After Finalize the registry is read-only, so no
// locking discipline is needed.
package nodetype
