package gantt

import _ "embed"

// Sample is a small plan that exercises every directive. `gantitt init` and
// the editor's load-sample action both use it.
//
//go:embed sample.txt
var Sample string
