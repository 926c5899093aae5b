package errors

import "unicode"

// ValidateNodeID validates a node identifier arriving from an untrusted
// document or API request. Ids are opaque to the engine, so the rules are
// intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 256 characters
//
// Uniqueness is a property of the whole document and is checked by the
// decoder, not here.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNode, "node id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidNode, "node id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNode, "node id contains control characters")
		}
	}

	return nil
}

// ValidateLabel validates a node label. Labels are display-only and may be
// empty; they must still fit on screens and stay out of terminal escape
// territory:
//   - Maximum length of 512 characters
//   - No control characters except tab
func ValidateLabel(label string) error {
	if len(label) > 512 {
		return New(ErrCodeInvalidNode, "label too long (max 512 characters)")
	}

	for _, r := range label {
		if unicode.IsControl(r) && r != '\t' {
			return New(ErrCodeInvalidNode, "label contains control characters")
		}
	}

	return nil
}

// ValidateEdgeID validates an edge identifier. The same character rules as
// [ValidateNodeID] apply, but an empty edge id is allowed - the editor mints
// ids on save, and hand-written documents often omit them.
func ValidateEdgeID(id string) error {
	if id == "" {
		return nil
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidEdge, "edge id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidEdge, "edge id contains control characters")
		}
	}

	return nil
}
