// Package buffer implements a host's bounded message store and the admission
// policy that guards it.
//
// The buffer is capacity-bounded in bytes and keeps a cached lowest-priority
// value consistent across every insertion and eviction, excluding messages
// that are mid-transfer. Admission is all-or-nothing: a candidate either
// displaces strictly lower-priority residents and is stored, or it is
// rejected and the buffer is untouched. Rejections are ordinary outcomes, not
// errors.
package buffer
