/*
Package status performs and records every filesystem change of a run.

	            +-------------+
	            |   Manager   |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+------+         +------+-----+
	| billy.Fs   |         |  FileInfo  |
	| osfs/memfs |         |  tracking  |
	+------------+         +------------+

🎯 Purpose:
- Reads, writes and renames files through a billy.Filesystem
- Copies whole trees for clone runs
- Records what happened to each file so a summary can be built

🔄 Flow:
1. Operations read content through the Manager
2. Changed content is written back with WriteFileAtomic
3. Renames go through Rename, which refuses to overwrite
4. Counts tallies the tracked files at the end of the run

⚡ Guarantees:
- A write goes to "<path>.projrename.tmp" first and is renamed over the
  target, so a file is never left half written
- The original file mode is kept
- In dry run mode nothing is written or renamed, but everything is tracked
- Walks check the context between entries

🔍 Example:

	mgr := status.New(osfs.New("/"), false)

	content, err := mgr.ReadFile(ctx, path)
	...
	err = mgr.WriteFileAtomic(ctx, path, updated)
	mgr.TrackUpdated(path, replacements, updated)

	counts := mgr.Counts()
*/
package status
