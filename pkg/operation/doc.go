/*
Package operation propagates a project identifier through a directory tree.

	+-------------+
	|  Operation  |
	| clone       |
	| realign     |
	| repair      |
	+------+------+
	       |
	+------+------+
	| propagator  |
	| 1. rewrite  |
	| 2. rename   |
	+------+------+
	       |
	+------+------+
	|   status    |
	| (billy fs)  |
	+-------------+

🎯 Modes:
  - clone: copy <source> to <target>, then rename Source -> Target. Metadata and
    key-value lines are rewritten unconditionally; namespaces and log tags only
    where they name the source.
  - realign: the folder name is the new name, the old one is read from the first
    <AssemblyName> in a .csproj. Every occurrence is replaced in any case, the
    replacement following the casing of each match.
  - repair: namespaces, log tags and metadata are forced to the folder name,
    whatever they currently say.

🔄 Flow:
 1. Validate inputs. Nothing is touched when validation fails.
 2. Rewrite every eligible file; a file is written only when its bytes change.
 3. Rename files whose names carry the old identifier. Realign walks deepest
    paths first and renames any file; clone and repair only rename .csproj and
    .sln files that start with the old name.
 4. Report a summary.

Each write is atomic, the run as a whole is not: an I/O error stops the run and
leaves earlier changes in place.
*/
package operation
