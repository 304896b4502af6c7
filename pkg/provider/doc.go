// Package provider turns command line arguments into the ordered list of files
// a batch processes.
//
//	            +-------------+
//	            |  Provider   |
//	            |  (Source)   |
//	            +------+------+
//	                   |
//	      +------------+------------+
//	      |                         |
//	+-----+-----+             +-----+-----+
//	|   Local   |             |   List    |
//	| (globs)   |             | (stdin)   |
//	+-----------+             +-----------+
//
// 🎯 Purpose:
// - Expands paths and doublestar globs (`**/*.jpg`) into absolute paths
// - Reads newline separated path lists
// - Drops directories, duplicates and ignored files
//
// 🔄 Ordering:
// Files come back in argument order. Matches of one glob keep the order the
// walk produced them in. A file named twice is kept at its first position.
//
// 🔍 Example:
//
//	factory := provider.Get("local")
//	p, _ := factory(ctx)
//	files, err := p.ListFiles(ctx, provider.Args{
//		Patterns: []string{"photos/**/*.jpg"},
//		Ignore:   []string{"**/thumbs/**"},
//	})
package provider
