// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package text

import (
	"regexp"
	"strings"
)

// 📂 Extension sets per mode
var (
	CloneExtensions   = []string{".cs", ".csproj", ".sln", ".txt", ".xml", ".yaml", ".yml", ".md", ".json"}
	RepairExtensions  = []string{".cs", ".csproj", ".sln", ".txt"}
	RealignExtensions = []string{".cs", ".csproj", ".yaml"}
)

// 📋 Literal describes a plain old -> new text replacement
type Literal struct {
	Old  string
	New  string
	File string // optional doublestar glob
}

// literal escapes s for use inside a regexp replacement template
func literal(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

func rule(name, pattern, template string) Rule {
	return Rule{
		Name:     name,
		Pattern:  regexp.MustCompile(pattern),
		Template: template,
	}
}

// logTagRules rewrites the bracketed tag right after the opening quote of a
// Debug.Log / LogWarning / LogError call. tag is a regexp fragment.
func logTagRules(tag, newName string) []Rule {
	n := literal(newName)
	return []Rule{
		rule("log-tag-info", `Debug\.Log\(\s*"\[`+tag+`\]`, `Debug.Log("[`+n+`]`),
		rule("log-tag-warning", `Debug\.LogWarning\(\s*"\[`+tag+`\]`, `Debug.LogWarning("[`+n+`]`),
		rule("log-tag-error", `Debug\.LogError\(\s*"\[`+tag+`\]`, `Debug.LogError("[`+n+`]`),
	}
}

func metadataRules(newName string) []Rule {
	n := literal(newName)
	return []Rule{
		rule("assembly-name", `(<AssemblyName>)\s*[^<]*\s*(</AssemblyName>)`, `${1}`+n+`${2}`),
		rule("root-namespace", `(<RootNamespace>)\s*[^<]*\s*(</RootNamespace>)`, `${1}`+n+`${2}`),
	}
}

func assemblyAttributeRules(newName string) []Rule {
	n := literal(newName)
	return []Rule{
		rule("assembly-title", `(\[assembly:\s*AssemblyTitle\()\s*"[^"]*"`, `${1} "`+n+`"`),
		rule("assembly-product", `(\[assembly:\s*AssemblyProduct\()\s*"[^"]*"`, `${1} "`+n+`"`),
	}
}

// 🧬 CloneRules is the rule set used after copying a project to a new name.
// Metadata and key-value rules rewrite unconditionally, the rest only touch
// occurrences of oldName.
func CloneRules(oldName, newName string) RuleSet {
	o := regexp.QuoteMeta(oldName)
	n := literal(newName)

	rules := []Rule{
		rule("namespace", `\bnamespace\s+`+o, `namespace `+n),
	}
	rules = append(rules, logTagRules(o, newName)...)
	rules = append(rules, rule("bracket-tag", `\[`+o+`\]`, `[`+n+`]`))
	rules = append(rules, metadataRules(newName)...)
	rules = append(rules, assemblyAttributeRules(newName)...)
	rules = append(rules,
		rule("key-id", `(\bid:\s*)[^\s]+`, `${1}`+n),
		rule("key-title", `(\btitle:\s*)[^\r\n]+`, `${1}`+n),
		rule("key-name", `(\bname:\s*)[^\r\n]+`, `${1}`+n),
	)

	return RuleSet{
		Name:       "clone",
		Rules:      rules,
		Extensions: CloneExtensions,
	}
}

// 🩹 RepairRules normalizes assembly metadata, namespaces and log tags to
// projectName. Namespace and log tag rules match any identifier.
func RepairRules(projectName string) RuleSet {
	n := literal(projectName)

	rules := assemblyAttributeRules(projectName)
	rules = append(rules, metadataRules(projectName)...)
	rules = append(rules, rule("namespace", `\bnamespace\s+\w+`, `namespace `+n))
	rules = append(rules, logTagRules(`\w+`, projectName)...)

	return RuleSet{
		Name:       "repair",
		Rules:      rules,
		Extensions: RepairExtensions,
	}
}

// 🧭 RealignRules replaces every occurrence of oldName, ignoring case, with
// newName adapted to the casing of each match.
func RealignRules(oldName, newName string) RuleSet {
	return RuleSet{
		Name: "realign",
		Rules: []Rule{
			{
				Name:    "case-adaptive",
				Pattern: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(oldName)),
				Func: func(match string) string {
					return AdaptCase(match, newName)
				},
			},
		},
		Extensions: RealignExtensions,
	}
}

// 📋 LiteralRules turns plain replacements into rules
func LiteralRules(literals []Literal) []Rule {
	rules := make([]Rule, 0, len(literals))
	for _, l := range literals {
		repl := l.New
		rules = append(rules, Rule{
			Name:           "literal:" + l.Old,
			Pattern:        regexp.MustCompile(regexp.QuoteMeta(l.Old)),
			Func:           func(string) string { return repl },
			FileFilterGlob: l.File,
		})
	}
	return rules
}
