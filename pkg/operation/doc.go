/*
Package operation applies clipedit replacement rules to files on disk.

	+-------------+
	|  Runner     |
	| (sync/async)|
	+------+------+
	       |
	+------+-------+
	|  Replace     |
	| (glob+rules) |
	+------+-------+
	       |
	+------+------+
	| text.Engine |
	+-------------+

🎯 Purpose:
- Runs the same replace-all used in the editor over many files
- Picks files per rule with doublestar globs relative to a root
- Reports one line per file through the console logger

🔄 Flow:
1. NewReplaceOperation validates every rule
2. Execute lists the files under the root and keeps, per file, the rules
   whose glob applies to it, in config order
3. Files are processed concurrently with a bounded errgroup
4. Modified files are written back unless DryRun is set

⚡ Notes:
- A failing file does not stop the others; Execute reports the count
- Results are sorted by path, whatever order the workers finished in
- Context cancellation stops files that have not started yet

🔍 Example:

	op, err := operation.NewReplaceOperation(operation.ReplaceOptions{
		Root:  ".",
		Rules: cfg.Rules,
	})
	if err != nil {
		return err
	}
	if err := operation.NewRunner(zerolog.Ctx(ctx), false).Run(ctx, op); err != nil {
		return err
	}
	for _, r := range op.Results() {
		fmt.Println(r.Path, r.Replacements)
	}
*/
package operation
