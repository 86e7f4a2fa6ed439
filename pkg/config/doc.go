/*
Package config loads the editor preferences, search defaults and batch rules
for clipedit.

	            +-------------+
	            |   Config    |
	            | (Defaults)  |
	            +------+------+
	                   |
	      +-----------+-----------+-----------+
	      |                       |           |
	+-----+-----+           +----+----+  +---+----+
	|   YAML    |           |   HCL   |  |  JSON  |
	| Parser    |           | Parser  |  | Parser |
	+-----------+           +---------+  +--------+

🎯 Purpose:
- Supplies the editor preferences when no file exists
- Decodes a file over those defaults, so partial files are fine
- Decides which commands are visible and which shortcuts stay active
- Converts batch rules into text engine requests

🔄 Flow:
1. LoadOrDefault checks the file exists, else returns Default()
2. The parser is picked by extension (unknown: YAML, then HCL)
3. Validate checks backup levels and rule globs

📝 YAML:

	editor:
	  protect_mode: true
	  backup_levels: 3
	  find_button: false
	search:
	  whole_words_only: false
	rules:
	  - name: rename
	    find: clipsy
	    replace: clipedit
	    preserve_case: true
	    files: "docs/*.md"

📝 HCL:

	editor {
	  backup_levels = max_backup_levels
	  sound         = false
	}

	rule "rename" {
	  find  = "clipsy"
	  replace = "clipedit"
	  files = "docs/*.md"
	}

🔍 Example:

	cfg, err := config.LoadOrDefault(ctx, ".clipedit.yaml")
	if err != nil {
		return err
	}
	if cfg.Editor.ShortcutActive(config.ActionFind) {
		// register the find command
	}
*/
package config
