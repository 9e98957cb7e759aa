/*
Package operation drives the per-match loop shared by delete, move, and download.

	+------------+
	|  Executor  |
	| (Run Loop) |
	+-----+------+
	      |
	+-----+------+
	|   unitOp   |
	| (del/mv/dl)|
	+------------+

🎯 Purpose:
- Turns one request into a walk, a match set, and a per-item loop
- Applies the batch vs single-item failure policy
- Records a per-entry outcome for every attempted item

🔄 Flow:
1. Exact mode: one literal path, no walk
2. Regex mode: walker enumerates, match narrows, excludes drop
3. Per item: resolve destination, provision it, execute, report

⚡ Key Responsibilities:
- Ordinal assignment (1-based, none for a single match)
- Skip-and-continue for delete/download item failures in batch mode
- Abort-on-first-failure for move, in every mode

🤝 Interfaces:
- ftpsession.Session: remote primitives
- status.Reporter: user-facing progress lines

📝 Design Philosophy:
The three operations used to be three near-identical loops. Keeping them as
thin unitOp implementations behind one engine means the walk, the match, and
the failure policy can only ever disagree on purpose, not by drift. The one
deliberate asymmetry: a failed rename aborts, a failed delete or download is
skipped.
*/
package operation
