// 19 Oct 2026
/*

abrmsd compares predicted antibody structures with their native
structures. Each prediction is superimposed on its native using the
backbone (N, CA, C) of the heavy and light chains together, then the
RMSD of each CDR and of each framework is reported without fitting
again.

Both structures must be Chothia numbered. Residues after heavy chain
113 and light chain 106 are thrown away.

Usage:
 abrmsd [options] -n native_dir -p pred_dir

Every .pdb, .ent, .cif or .mmcif file (maybe gzipped) in pred_dir is
paired with the file of the same name in native_dir. If -p is a file,
just that one is scored, against -n if it is a file.

Flags:
  -n dir
    	Native structures.
  -p dir
    	Predicted structures.
  -o file.csv
    	Write results in csv format. A file errors.log is written in
    	the same directory, listing the structures that could not be
    	scored. An empty errors.log means everything worked.
  -H id, -L id
    	Heavy and light chain ids. The same ids are used for the native
    	and the prediction. Default H and L.
  -r N
    	Score N structures at once. Default is the number of CPUs.
  -s dir
    	Write each prediction, moved onto its native, to dir/id.pdb.
  -g file.png
    	Bar chart of the mean RMSD of each region.
  -w
    	After scoring, keep watching pred_dir. New or rewritten files
    	are scored and the csv is rewritten.
  -settle duration
    	In watch mode, a file is read when it has not changed for
    	this long. Default 2s.
  -l where
    	Log to stdout, stderr or a file. By default, logging is off.
  -f
    	Download natives by the four letter code in the file name
    	(1abc.pdb is compared with 1abc). SAbDab is tried first since
    	it gives Chothia numbering.

The table is also written to standard output. The last row is the mean
of each column. A region missing from a structure is left empty and does not
count towards the mean.

*/
package main
