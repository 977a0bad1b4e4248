package fasta

import "strings"

// CleanSequence uppercases s and drops everything that is not a letter.
// Digits, whitespace and punctuation from copy-pasted sequences disappear.
func CleanSequence(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteByte(byte(r) - 'a' + 'A')
		case r >= 'A' && r <= 'Z':
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// CleanName keeps only letters, digits and underscores so the result is
// safe to use as a file or directory name.
func CleanName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteByte(byte(r))
		case r >= '0' && r <= '9', r == '_':
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}
