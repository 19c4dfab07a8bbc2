package model

// Receipt identifies a single page-document inside a receipt bundle.
// Raw bytes stay owned by the bundle; the normalized text blob is derived
// lazily during reconciliation and cached per name.
type Receipt struct {
	Name string
	Size int64
}
