// Package assets resolves and opens the files an HTML document references.
//
// # Loader Architecture
//
//	Resolver
//	    │
//	    ├── FilesystemLoader  - opens references rooted at the build directory
//	    └── HTTPLoader        - fetches http(s) references (opt-in)
//
// FilesystemLoader maps a reference onto the base directory. Absolute
// references are rebased onto the base directory rather than the filesystem
// root, so "/main.js" and "main.js" name the same file. Relative references
// are joined to the base directory. Query strings and fragments are ignored.
//
// HTTPLoader fetches remote references with an explicit timeout and size cap.
// It is only consulted when remote fetching is enabled; otherwise the
// Resolver reports ErrRemoteDisabled and callers leave the reference as is.
//
// # Security
//
// Resolved paths must stay inside the base directory. Symlinks are resolved
// before the containment check, so a link pointing outside the build output
// is rejected with ErrPathTraversal.
package assets
