package pdb

// SingleFileName is the combined output written when all models go into
// one file.
const SingleFileName = "nanonet_backbone_cb.pdb"

// BackboneFile returns the per-record backbone output name.
func BackboneFile(name string) string {
	return name + "_nanonet_backbone_cb.pdb"
}

// FullAtomFile returns the output name for Scwrl4 side-chain
// reconstruction.
func FullAtomFile(name string) string {
	return name + "_nanonet_full.pdb"
}

// RelaxedFile returns the output name for modeller reconstruction.
func RelaxedFile(name string) string {
	return name + "_nanonet_full_relaxed.pdb"
}
