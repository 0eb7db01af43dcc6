// Package config loads the optional per-project configuration for projrename.
//
//	            +-------------+
//	            |   Config    |
//	            | (Settings)  |
//	            +------+------+
//	                   |
//	      +------------+------------+
//	      |            |            |
//	+-----+----+ +-----+----+ +-----+----+
//	|   YAML   | |   HCL    | |   JSON   |
//	+----------+ +----------+ +----------+
//
// A project root may contain one of .projrename.yaml, .projrename.yml,
// .projrename.hcl or .projrename.json. Without one, the built-in rules run
// unchanged.
//
// 🔧 Fields:
//   - extensions: extra file extensions whose content is rewritten
//   - ignore: doublestar globs, relative to the project root, excluded from
//     rewriting and renaming (.git is always excluded)
//   - replacements: literal old/new pairs applied after the built-in rules,
//     optionally restricted to files matching a glob
//
// 🔍 Example (YAML):
//
//	extensions: [".props", ".asmdef"]
//	ignore:
//	  - "Library/**"
//	  - "**/*.Designer.cs"
//	replacements:
//	  - old: "Copyright Foo Studio"
//	    new: "Copyright Bar Studio"
//	    file: "**/*.cs"
//
// 🔍 Example (HCL):
//
//	extensions = [".props"]
//	ignore     = ["Library/**"]
//
//	replacement {
//	  old  = "Copyright Foo Studio"
//	  new  = "Copyright Bar Studio"
//	  file = "**/*.cs"
//	}
//
// Unknown fields are rejected in every format.
package config
