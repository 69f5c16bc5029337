/*
Package source defines the interface for SOP backends in soprc.

	            +-------------+
	            |   Source    |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Local   |           |   S3    |
	| Directory |           | Bucket  |
	+-----------+           +---------+

🎯 Purpose:
- Abstracts SOP document retrieval
- Provides a unified interface for filesystem and object-storage backends
- Parses source configuration strings into concrete sources
- Builds the precedence-ordered source list

🔄 Flow:
1. Receives source strings, paths, and the builtin dir from the caller
2. Parses source strings through the type registry
3. Expands the path list into local sources
4. Appends the builtin source if its directory exists
5. Each source enumerates, fetches, and parses its SOP files on Load

⚡ Key Responsibilities:
- Backend enumeration and fetch
- Per-document failure isolation (an invalid file skips only itself)
- Source unavailability degradation (a missing directory yields empty)
- Lazy transport client creation for remote backends

📝 Design Philosophy:
Sources never decide precedence. They produce records in their own
enumeration order and report a stable identity string; the merge in
pkg/operation owns de-duplication. Configuration parse errors are the
only hard errors here - everything at load time degrades to a logged
warning at the smallest possible scope.
*/
package source
