// Package sidechain rebuilds full-atom side chains for predicted backbones
// by driving external tools.
package sidechain

// Reconstructor rebuilds side chains for one predicted backbone. Rebuild
// runs in dir, reads the record's backbone file and returns the name of
// the file it wrote.
type Reconstructor interface {
	Name() string
	Check() error
	Rebuild(dir, name, seq string) (string, error)
}
