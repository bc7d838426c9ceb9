package finder

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// delimiters lists the characters accepted as PCRE-style pattern delimiters,
// mapped to their closing counterpart.
var delimiters = map[byte]byte{
	'/': '/', '#': '#', '~': '~', '!': '!', '@': '@', '%': '%', '|': '|',
	',': ',', ';': ';', ':': ':', '=': '=', '`': '`', '{': '}', '<': '>',
}

// pcreModifiers is the PCRE modifier alphabet. A trailing run of these after
// the closing delimiter marks a template as delimited.
const pcreModifiers = "imsxuUXJADSn"

// exclusion is a compiled exclusion rule. Regex templates look at the
// absolute path, globs at the slash separated path relative to the root.
type exclusion struct {
	source string
	match  func(absPath, relPath string) bool
}

// compileExclusions compiles regex templates followed by globs, preserving
// order so evaluation can stop at the first match.
func compileExclusions(templates, globs []string) ([]exclusion, error) {
	rules := make([]exclusion, 0, len(templates)+len(globs))

	for _, tmpl := range templates {
		re, err := CompilePattern(tmpl)
		if err != nil {
			return nil, err
		}
		rules = append(rules, exclusion{
			source: tmpl,
			match:  func(absPath, _ string) bool { return re.MatchString(absPath) },
		})
	}

	for _, glob := range globs {
		if !doublestar.ValidatePattern(glob) {
			return nil, fmt.Errorf("%w: invalid glob %q", ErrPatternCompilation, glob)
		}
		g := glob
		rules = append(rules, exclusion{
			source: g,
			match: func(_, relPath string) bool {
				// Pattern was validated above, so Match cannot fail.
				ok, _ := doublestar.Match(g, relPath)
				return ok
			},
		})
	}

	return rules, nil
}

// firstMatch returns the first rule matching path, or nil.
func firstMatch(rules []exclusion, root, path string) *exclusion {
	if len(rules) == 0 {
		return nil
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for i := range rules {
		if rules[i].match(path, rel) {
			return &rules[i]
		}
	}
	return nil
}

// CompilePattern compiles an exclusion template.
//
// Templates may be bare RE2 expressions ("vendor/", `Test\.php$`) or
// delimited in the PCRE style used by PHP tooling ("/C\.php$/", "#/tmp/#i",
// "{^/srv}"). Delimited templates support the i, m, s and U modifiers; u, D
// and S are accepted and ignored since RE2 already behaves that way, and the
// remaining PCRE modifiers are rejected. Matching is unanchored unless the
// expression anchors itself.
func CompilePattern(template string) (*regexp.Regexp, error) {
	expr := template
	if body, flags, ok := splitDelimited(template); ok {
		prefix, err := translateModifiers(flags)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrPatternCompilation, template, err)
		}
		expr = prefix + body
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrPatternCompilation, template, err)
	}
	return re, nil
}

// splitDelimited recognizes "<d>body<d>flags" where d is one of delimiters
// and flags only uses PCRE modifier letters. Anything else is a bare
// expression, so "/src/Legacy" stays a plain regexp.
func splitDelimited(template string) (body, flags string, ok bool) {
	if len(template) < 2 {
		return "", "", false
	}

	closing, known := delimiters[template[0]]
	if !known {
		return "", "", false
	}

	end := strings.LastIndexByte(template, closing)
	if end <= 0 {
		return "", "", false
	}

	flags = template[end+1:]
	for _, r := range flags {
		if !strings.ContainsRune(pcreModifiers, r) {
			return "", "", false
		}
	}
	return template[1:end], flags, true
}

func translateModifiers(flags string) (string, error) {
	var goFlags strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's', 'U':
			if !strings.ContainsRune(goFlags.String(), f) {
				goFlags.WriteRune(f)
			}
		case 'u', 'D', 'S':
		default:
			return "", fmt.Errorf("unsupported modifier %q", f)
		}
	}
	if goFlags.Len() == 0 {
		return "", nil
	}
	return "(?" + goFlags.String() + ")", nil
}
