// Package mmcif reads coordinates from a file in mmcif/cif format.
//
// Reading mmcif files is interesting because they are so big,
// but we do not want much information from them. We only look for the
// _atom_site loop and jump over everything else.
// If one looks at the format there are some features that make it
// simpler.
// 1. The first character on the line is decisive. If it is a data item
// it has to be a "_". A loop starts with loop_ and ends at the next
// data item, loop, comment line or data block.
// 2. The pdb promises that they will restrict themselves to a certain
// style. In the atom_site table, there is one atom per line.
// Multi-line text fields, like
// ;a
//   b
// ;
// are jumped over, since they never contain coordinates.
//
// Notes about the mmcif format...
// A question mark, ?, means a missing value.
// A dot, ., means not appropriate or deliberately left out.
// Chains are named by _atom_site.auth_asym_id and residues numbered by
// auth_seq_id, which is what the old pdb format and antibody numbering
// schemes use. The label_ versions are only used if the auth_ columns
// are missing.
package mmcif
